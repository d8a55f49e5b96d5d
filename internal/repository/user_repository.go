// Package repository defines persistence interfaces for the domain entities.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

type UserRepository interface {
	// Get retrieves a user by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername retrieves a user by username. Returns (nil, nil) if not found.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByEmail retrieves a user by email. Returns (nil, nil) if not found.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// ListByRole returns all users carrying the given role.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
