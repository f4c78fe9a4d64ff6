package interaction

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	aggregateStatsQuery = `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM user_interactions
		WHERE product_id = $1
	`
	insertFeedbackQuery = `
		INSERT INTO user_feedback (user_id, product_id, rating, feedback_text)
		VALUES ($1, $2, $3, $4)
		RETURNING feedback_id, created_at
	`
	upsertRatingQuery = `
		INSERT INTO user_interactions (user_id, product_id, rating, view_count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET rating = EXCLUDED.rating, interaction_date = now()
	`
	upsertViewQuery = `
		INSERT INTO user_interactions (user_id, product_id, view_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET view_count = user_interactions.view_count + 1, interaction_date = now()
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Aggregate(productID int) (ProductStats, error) {
	var stats ProductStats
	err := r.db.QueryRow(aggregateStatsQuery, productID).
		Scan(&stats.AverageRating, &stats.InteractionCount)
	if err != nil {
		return ProductStats{}, err
	}
	return stats, nil
}

// SubmitFeedback runs the feedback insert and the interaction upsert in one
// transaction so they commit or roll back together.
func (r *PostgresRepository) SubmitFeedback(f Feedback) (Feedback, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Feedback{}, err
	}
	defer tx.Rollback()

	var text sql.NullString
	if f.FeedbackText != nil {
		text = sql.NullString{String: *f.FeedbackText, Valid: true}
	}
	if err := tx.QueryRow(insertFeedbackQuery, f.UserID, f.ProductID, f.Rating, text).
		Scan(&f.ID, &f.CreatedAt); err != nil {
		return Feedback{}, err
	}

	if _, err := tx.Exec(upsertRatingQuery, f.UserID, f.ProductID, f.Rating); err != nil {
		return Feedback{}, err
	}

	if err := tx.Commit(); err != nil {
		return Feedback{}, err
	}
	return f, nil
}

func (r *PostgresRepository) RecordView(userID, productID int) error {
	_, err := r.db.Exec(upsertViewQuery, userID, productID)
	return err
}
