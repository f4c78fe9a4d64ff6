package product

import "time"

// Product maps to the `products` table. JSON tags follow the snake_case wire
// convention used by the public API.
type Product struct {
	ID          int       `json:"product_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CategoryID  *int      `json:"category_id,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sort modes accepted by the search endpoint.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// SearchParams describes a free-text catalog search. Query is matched
// case-insensitively against name and description; Category is an exact
// (case-insensitive) category-name match, deliberately not hierarchy-aware.
type SearchParams struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	Limit    int
	Offset   int
}

// ValidSort reports whether the sort selector is one of the supported modes.
func ValidSort(s string) bool {
	switch s {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	}
	return false
}
