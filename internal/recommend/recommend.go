// Package recommend holds the ranking engine: category resolution,
// per-product interaction aggregation, composite scoring and the ordered,
// size-bounded result list.
package recommend

import (
	"context"
	"errors"

	"github.com/pattaradanai-k/product-recommend-backend/internal/category"
	"github.com/pattaradanai-k/product-recommend-backend/internal/interaction"
	"github.com/pattaradanai-k/product-recommend-backend/internal/product"
	"github.com/pattaradanai-k/product-recommend-backend/internal/user"
)

var ErrUserNotFound = errors.New("user not found")

const (
	// DefaultLimit applies when the caller does not ask for a specific size.
	DefaultLimit = 5
	// MaxLimit bounds the work a single request may demand.
	MaxLimit = 50
)

// Result is a per-request product snapshot with the computed ranking fields.
// Not persisted; discarded after the response is written.
type Result struct {
	ProductID        int     `json:"product_id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	Price            float64 `json:"price"`
	CategoryID       *int    `json:"category_id,omitempty"`
	CategoryName     *string `json:"category_name,omitempty"`
	ImageURL         *string `json:"image_url,omitempty"`
	SimilarityScore  float64 `json:"similarity_score"`
	AverageRating    float64 `json:"average_rating"`
	InteractionCount int     `json:"interaction_count"`
}

// The engine names its collaborators by what it needs from them; the
// concrete feature services satisfy these.

type UserFinder interface {
	GetByID(id int) (user.User, error)
}

type CategoryResolver interface {
	Resolve(name string) ([]int, error)
	GetByID(id int) (category.Category, error)
}

type ProductLister interface {
	List() ([]product.Product, error)
	ListByCategoryIDs(ids []int) ([]product.Product, error)
}

type Aggregator interface {
	Aggregate(productID int) (interaction.ProductStats, error)
}

// Cache memoizes serialized result lists. It is acceleration only: a nil or
// failing cache changes latency, never results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
