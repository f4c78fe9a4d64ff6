package interaction

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAggregatePostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"coalesce", "count"}).AddRow(4.2, 7)
	mock.ExpectQuery("SELECT COALESCE").WithArgs(5).WillReturnRows(rows)

	stats, err := repo.Aggregate(5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if stats.AverageRating != 4.2 || stats.InteractionCount != 7 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubmitFeedbackCommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO user_feedback").
		WithArgs(1, 2, 5, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"feedback_id", "created_at"}).AddRow(10, created))
	mock.ExpectExec("INSERT INTO user_interactions").
		WithArgs(1, 2, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	text := "great"
	f, err := repo.SubmitFeedback(Feedback{UserID: 1, ProductID: 2, Rating: 5, FeedbackText: &text})
	if err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}
	if f.ID != 10 || !f.CreatedAt.Equal(created) {
		t.Fatalf("unexpected feedback %+v", f)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubmitFeedbackRollsBackWhenUpsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO user_feedback").
		WithArgs(3, 4, 1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"feedback_id", "created_at"}).AddRow(11, time.Now()))
	mock.ExpectExec("INSERT INTO user_interactions").
		WithArgs(3, 4, 1).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	if _, err := repo.SubmitFeedback(Feedback{UserID: 3, ProductID: 4, Rating: 1}); err == nil {
		t.Fatal("expected an error when the interaction upsert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordViewPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO user_interactions").
		WithArgs(8, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RecordView(8, 9); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
