package embedding

import (
	"database/sql"
	"encoding/json"
)

type PostgresStore struct {
	db *sql.DB
}

const updateEmbeddingQuery = `UPDATE products SET embedding = $1 WHERE product_id = $2`

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// UpdateEmbedding stores the vector JSON-encoded in the products.embedding
// text column.
func (s *PostgresStore) UpdateEmbedding(productID int, vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(updateEmbeddingQuery, string(raw), productID)
	return err
}
