// Package embedding hosts the scheduled catalog embedding refresh. The
// encoder is a placeholder: real vector similarity is a future extension and
// nothing downstream reads the stored values yet.
package embedding

import (
	"go.uber.org/zap"

	"github.com/pattaradanai-k/product-recommend-backend/internal/product"
)

// Encoder turns product text into an embedding vector.
type Encoder interface {
	Encode(text string) []float64
}

// StubEncoder returns a fixed-size zero vector for any input.
type StubEncoder struct {
	Dim int
}

func (e StubEncoder) Encode(string) []float64 {
	return make([]float64, e.Dim)
}

// Catalog is the read side of the refresh.
type Catalog interface {
	List() ([]product.Product, error)
}

// Store persists computed vectors.
type Store interface {
	UpdateEmbedding(productID int, vec []float64) error
}

type Updater struct {
	catalog Catalog
	store   Store
	encoder Encoder
	logger  *zap.Logger
}

func NewUpdater(catalog Catalog, store Store, encoder Encoder, logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{catalog: catalog, store: store, encoder: encoder, logger: logger}
}

// RefreshAll recomputes and stores the embedding for every product.
// Per-product failures are logged and skipped so one bad row does not stall
// the rest of the catalog; the next scheduled run starts clean either way.
func (u *Updater) RefreshAll() (int, error) {
	products, err := u.catalog.List()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, p := range products {
		text := p.Name
		if p.Description != nil {
			text += " " + *p.Description
		}
		vec := u.encoder.Encode(text)
		if err := u.store.UpdateEmbedding(p.ID, vec); err != nil {
			u.logger.Warn("embedding update failed",
				zap.Int("product_id", p.ID), zap.Error(err))
			continue
		}
		updated++
	}

	u.logger.Info("embedding refresh finished",
		zap.Int("updated", updated), zap.Int("total", len(products)))
	return updated, nil
}
