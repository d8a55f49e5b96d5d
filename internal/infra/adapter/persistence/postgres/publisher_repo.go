package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type PublisherRepo struct {
	db *sql.DB
}

func NewPublisherRepo(db *sql.DB) repository.PublisherRepository {
	return &PublisherRepo{db: db}
}

func (repo *PublisherRepo) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	const query = `
SELECT id, name, description, created_at
FROM publishers
WHERE id = $1
LIMIT 1`
	var publisher entity.Publisher
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&publisher.ID, &publisher.Name, &publisher.Description, &publisher.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &publisher, nil
}

func (repo *PublisherRepo) List(ctx context.Context) ([]*entity.Publisher, error) {
	const query = `
SELECT id, name, description, created_at
FROM publishers
ORDER BY name`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	publishers := make([]*entity.Publisher, 0, 20)
	for rows.Next() {
		var publisher entity.Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name,
			&publisher.Description, &publisher.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		publishers = append(publishers, &publisher)
	}
	return publishers, rows.Err()
}

func (repo *PublisherRepo) Create(ctx context.Context, publisher *entity.Publisher) error {
	const query = `
INSERT INTO publishers (name, description)
VALUES ($1, $2)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query, publisher.Name, publisher.Description).
		Scan(&publisher.ID, &publisher.CreatedAt)
	if err != nil {
		// 23505 is unique_violation; string match keeps us off driver-specific types.
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return repository.ErrDuplicateName
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) AddEditor(ctx context.Context, publisherID, userID int64) error {
	const query = `
INSERT INTO publisher_editors (publisher_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, publisherID, userID); err != nil {
		return fmt.Errorf("AddEditor: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) AddJournalist(ctx context.Context, publisherID, userID int64) error {
	const query = `
INSERT INTO publisher_journalists (publisher_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, publisherID, userID); err != nil {
		return fmt.Errorf("AddJournalist: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) IsEditor(ctx context.Context, publisherID, userID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM publisher_editors WHERE publisher_id = $1 AND user_id = $2
)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, publisherID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("IsEditor: %w", err)
	}
	return exists, nil
}

func (repo *PublisherRepo) IsJournalist(ctx context.Context, publisherID, userID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM publisher_journalists WHERE publisher_id = $1 AND user_id = $2
)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, publisherID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("IsJournalist: %w", err)
	}
	return exists, nil
}
