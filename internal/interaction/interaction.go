package interaction

import "time"

// Interaction is the single running record of a user's engagement with one
// product. There is at most one row per (user, product) pair; it is created
// on first view or feedback and updated in place afterwards.
type Interaction struct {
	ID              int       `json:"interaction_id"`
	UserID          int       `json:"user_id"`
	ProductID       int       `json:"product_id"`
	Rating          *int      `json:"rating,omitempty"`
	ViewCount       int       `json:"view_count"`
	PurchaseCount   int       `json:"purchase_count"`
	InteractionDate time.Time `json:"interaction_date"`
}

// Feedback is an append-only rating/comment event. Every submission creates
// a new row, unlike the Interaction it upserts.
type Feedback struct {
	ID           int       `json:"feedback_id"`
	UserID       int       `json:"user_id"`
	ProductID    int       `json:"product_id"`
	Rating       int       `json:"rating"`
	FeedbackText *string   `json:"feedback_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductStats is the per-product aggregate consumed by scoring and the
// search rating sort: mean of the non-null ratings (0.0 when there are
// none) and the count of all interaction rows.
type ProductStats struct {
	AverageRating    float64
	InteractionCount int
}
