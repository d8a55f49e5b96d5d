package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// CreateInput represents the input parameters for creating a publisher.
type CreateInput struct {
	Name        string
	Description string
}

// Service provides publisher management use cases. Publishers are created by
// editors; the creator is enrolled on the editor roster so the new publisher
// is never orphaned.
type Service struct {
	Publishers repository.PublisherRepository
	Users      repository.UserRepository
}

// Create registers a new publisher and enrolls the creating editor.
func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (*entity.Publisher, error) {
	if p.Role != entity.RoleEditor {
		return nil, access.ErrPermissionDenied
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "is required"}
	}

	publisher := &entity.Publisher{Name: in.Name, Description: in.Description}
	if err := s.Publishers.Create(ctx, publisher); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	if err := s.Publishers.AddEditor(ctx, publisher.ID, p.UserID); err != nil {
		return nil, fmt.Errorf("enroll creator: %w", err)
	}
	return publisher, nil
}

// Get retrieves a publisher by ID.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	if id <= 0 {
		return nil, ErrInvalidPublisherID
	}
	publisher, err := s.Publishers.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get publisher: %w", err)
	}
	if publisher == nil {
		return nil, ErrPublisherNotFound
	}
	return publisher, nil
}

// List retrieves all publishers.
func (s *Service) List(ctx context.Context) ([]*entity.Publisher, error) {
	publishers, err := s.Publishers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return publishers, nil
}

// AddEditor enrolls a user with the editor role on the publisher's editor
// roster. The caller must already be an editor of the publisher.
func (s *Service) AddEditor(ctx context.Context, p access.Principal, publisherID, userID int64) error {
	if err := s.requireRosterAuthority(ctx, p, publisherID); err != nil {
		return err
	}
	if err := s.requireRole(ctx, userID, entity.RoleEditor); err != nil {
		return err
	}
	if err := s.Publishers.AddEditor(ctx, publisherID, userID); err != nil {
		return fmt.Errorf("add editor: %w", err)
	}
	return nil
}

// AddJournalist enrolls a user with the journalist role on the publisher's
// journalist roster. The caller must be an editor of the publisher.
func (s *Service) AddJournalist(ctx context.Context, p access.Principal, publisherID, userID int64) error {
	if err := s.requireRosterAuthority(ctx, p, publisherID); err != nil {
		return err
	}
	if err := s.requireRole(ctx, userID, entity.RoleJournalist); err != nil {
		return err
	}
	if err := s.Publishers.AddJournalist(ctx, publisherID, userID); err != nil {
		return fmt.Errorf("add journalist: %w", err)
	}
	return nil
}

func (s *Service) requireRosterAuthority(ctx context.Context, p access.Principal, publisherID int64) error {
	if publisherID <= 0 {
		return ErrInvalidPublisherID
	}
	if p.Role != entity.RoleEditor {
		return access.ErrPermissionDenied
	}
	publisher, err := s.Publishers.Get(ctx, publisherID)
	if err != nil {
		return fmt.Errorf("get publisher: %w", err)
	}
	if publisher == nil {
		return ErrPublisherNotFound
	}
	member, err := s.Publishers.IsEditor(ctx, publisherID, p.UserID)
	if err != nil {
		return fmt.Errorf("check roster authority: %w", err)
	}
	if !member {
		return access.ErrPermissionDenied
	}
	return nil
}

func (s *Service) requireRole(ctx context.Context, userID int64, role entity.Role) error {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.Role != role {
		return ErrMemberNotEligible
	}
	return nil
}
