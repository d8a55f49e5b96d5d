package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	pg "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/repository"
)

func TestSubscriptionRepo_SubscribeToJournalist_GetOrCreate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Insert is a conflict no-op, the reload still returns the stored row.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO journalist_subscriptions")).
		WithArgs(int64(3), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, reader_id, journalist_id, created_at")).
		WithArgs(int64(3), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reader_id", "journalist_id", "created_at"}).
			AddRow(int64(11), int64(3), int64(2), now))

	repo := pg.NewSubscriptionRepo(db)
	sub, err := repo.SubscribeToJournalist(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("SubscribeToJournalist err=%v", err)
	}
	if sub.ID != 11 || sub.ReaderID != 3 || sub.JournalistID != 2 {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSubscriptionRepo_ResolveAudience_DropsNullEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM users").
		WithArgs(int64(5), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(int64(3), "rita", "rita@example.com").
			AddRow(int64(4), "nomail", nil))

	repo := pg.NewSubscriptionRepo(db)
	got, err := repo.ResolveAudience(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("ResolveAudience err=%v", err)
	}

	// A NULL email maps to an empty string; the fan-out pipeline filters it.
	want := []repository.AudienceMember{
		{UserID: 3, Username: "rita", Email: "rita@example.com"},
		{UserID: 4, Username: "nomail", Email: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
