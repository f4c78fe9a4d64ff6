package interaction

import (
	"errors"
	"sync"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Repository interface {
	// Aggregate is a pure read; zero matching rows yields {0, 0}, not an error.
	Aggregate(productID int) (ProductStats, error)
	// SubmitFeedback appends a feedback row and upserts the matching
	// interaction's rating. Both happen in one transaction.
	SubmitFeedback(f Feedback) (Feedback, error)
	// RecordView upserts the interaction for the pair, incrementing its view counter.
	RecordView(userID, productID int) error
}

// InMemoryRepository backs service and engine tests.
type InMemoryRepository struct {
	mu           sync.RWMutex
	interactions []Interaction
	feedback     []Feedback
	nextInterID  int
	nextFeedID   int
}

func NewInMemoryRepository(seed []Interaction) *InMemoryRepository {
	r := &InMemoryRepository{
		interactions: make([]Interaction, 0, len(seed)),
		nextInterID:  1,
		nextFeedID:   1,
	}

	maxID := 0
	for _, it := range seed {
		r.interactions = append(r.interactions, it)
		if it.ID > maxID {
			maxID = it.ID
		}
	}

	r.nextInterID = maxID + 1
	return r
}

func (r *InMemoryRepository) Aggregate(productID int) (ProductStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats ProductStats
	sum, rated := 0, 0
	for _, it := range r.interactions {
		if it.ProductID != productID {
			continue
		}
		stats.InteractionCount++
		if it.Rating != nil {
			sum += *it.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = float64(sum) / float64(rated)
	}
	return stats, nil
}

func (r *InMemoryRepository) SubmitFeedback(f Feedback) (Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = r.nextFeedID
	r.nextFeedID++
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	r.feedback = append(r.feedback, f)

	rating := f.Rating
	for i, it := range r.interactions {
		if it.UserID == f.UserID && it.ProductID == f.ProductID {
			r.interactions[i].Rating = &rating
			r.interactions[i].InteractionDate = f.CreatedAt
			return f, nil
		}
	}

	r.interactions = append(r.interactions, Interaction{
		ID:              r.nextInterID,
		UserID:          f.UserID,
		ProductID:       f.ProductID,
		Rating:          &rating,
		ViewCount:       1,
		InteractionDate: f.CreatedAt,
	})
	r.nextInterID++
	return f, nil
}

func (r *InMemoryRepository) RecordView(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for i, it := range r.interactions {
		if it.UserID == userID && it.ProductID == productID {
			r.interactions[i].ViewCount++
			r.interactions[i].InteractionDate = now
			return nil
		}
	}

	r.interactions = append(r.interactions, Interaction{
		ID:              r.nextInterID,
		UserID:          userID,
		ProductID:       productID,
		ViewCount:       1,
		InteractionDate: now,
	})
	r.nextInterID++
	return nil
}

// Interactions returns a copy of the stored interaction rows (test helper).
func (r *InMemoryRepository) Interactions() []Interaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Interaction, len(r.interactions))
	copy(out, r.interactions)
	return out
}

// FeedbackRows returns a copy of the stored feedback rows (test helper).
func (r *InMemoryRepository) FeedbackRows() []Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Feedback, len(r.feedback))
	copy(out, r.feedback)
	return out
}
