package repository

import (
	"context"
	"errors"

	"newsdesk/internal/domain/entity"
)

// ErrDuplicateName is returned by Create when a publisher name collides with
// an existing row.
var ErrDuplicateName = errors.New("publisher name already exists")

type PublisherRepository interface {
	// Get retrieves a publisher by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Publisher, error)
	List(ctx context.Context) ([]*entity.Publisher, error)
	// Create persists a new publisher. Name uniqueness is enforced by the
	// store; violations surface as ErrDuplicateName from the implementation.
	Create(ctx context.Context, publisher *entity.Publisher) error
	// AddEditor and AddJournalist record membership; both are idempotent.
	AddEditor(ctx context.Context, publisherID, userID int64) error
	AddJournalist(ctx context.Context, publisherID, userID int64) error
	// IsEditor reports whether the user is in the publisher's editor set.
	IsEditor(ctx context.Context, publisherID, userID int64) (bool, error)
	// IsJournalist reports whether the user is in the publisher's journalist set.
	IsJournalist(ctx context.Context, publisherID, userID int64) (bool, error)
}
