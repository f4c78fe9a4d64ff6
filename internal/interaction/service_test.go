package interaction

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestSubmitFeedbackRejectsOutOfRangeRating(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.SubmitFeedback(Feedback{UserID: 1, ProductID: 1, Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	if n := len(repo.FeedbackRows()); n != 0 {
		t.Fatalf("rejected feedback must not be stored, found %d rows", n)
	}
	if n := len(repo.Interactions()); n != 0 {
		t.Fatalf("rejected feedback must not touch interactions, found %d rows", n)
	}
}

func TestSubmitFeedbackAppendsFeedbackAndUpsertsInteraction(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)

	if _, err := svc.SubmitFeedback(Feedback{UserID: 7, ProductID: 3, Rating: 2}); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if _, err := svc.SubmitFeedback(Feedback{UserID: 7, ProductID: 3, Rating: 5}); err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	rows := repo.FeedbackRows()
	if len(rows) != 2 {
		t.Fatalf("feedback is append-only, expected 2 rows, got %d", len(rows))
	}

	inters := repo.Interactions()
	if len(inters) != 1 {
		t.Fatalf("expected a single interaction row per (user, product), got %d", len(inters))
	}
	if inters[0].Rating == nil || *inters[0].Rating != 5 {
		t.Fatalf("interaction rating must reflect the latest submission, got %v", inters[0].Rating)
	}
}

func TestRecordViewIncrementsSingleRow(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		if err := svc.RecordView(4, 9); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}

	inters := repo.Interactions()
	if len(inters) != 1 {
		t.Fatalf("expected one interaction row, got %d", len(inters))
	}
	if inters[0].ViewCount != 3 {
		t.Fatalf("expected view_count 3, got %d", inters[0].ViewCount)
	}
	if inters[0].Rating != nil {
		t.Fatalf("views alone must not set a rating, got %v", *inters[0].Rating)
	}
}

func TestAggregateIgnoresNullRatingsForAverage(t *testing.T) {
	repo := NewInMemoryRepository([]Interaction{
		{ID: 1, UserID: 1, ProductID: 5, Rating: intPtr(4), ViewCount: 1},
		{ID: 2, UserID: 2, ProductID: 5, Rating: intPtr(2), ViewCount: 1},
		{ID: 3, UserID: 3, ProductID: 5, ViewCount: 6}, // view-only, no rating
		{ID: 4, UserID: 1, ProductID: 6, Rating: intPtr(5), ViewCount: 1},
	})
	svc := NewService(repo)

	stats, err := svc.Aggregate(5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if stats.InteractionCount != 3 {
		t.Fatalf("count covers all rows, expected 3, got %d", stats.InteractionCount)
	}
	if stats.AverageRating != 3.0 {
		t.Fatalf("average covers rated rows only, expected 3.0, got %v", stats.AverageRating)
	}
}

func TestAggregateNoRowsIsZero(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	stats, err := svc.Aggregate(42)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if stats.AverageRating != 0 || stats.InteractionCount != 0 {
		t.Fatalf("expected zero stats for an unseen product, got %+v", stats)
	}
}
