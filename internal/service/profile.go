package service

import (
	"context"
	"fmt"

	"ctr/internal/domain"
	"ctr/internal/store"
)

// ProfileService manages user accounts.
type ProfileService struct {
	queries *store.Queries
}

// NewProfileService creates a new ProfileService
func NewProfileService(q *store.Queries) *ProfileService {
	return &ProfileService{queries: q}
}

// SetUserProhibitedStatus bans or releases a user account.
func (s *ProfileService) SetUserProhibitedStatus(ctx context.Context, userID int, prohibited bool) error {
	user, err := s.queries.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user %d: %w", userID, err)
	}

	switch {
	case user == nil:
		return ErrUserNotFound
	case user.Role == domain.RoleAdmin:
		return ErrProhibitAdmin
	case prohibited && user.Prohibited:
		return ErrUserAlreadyProhibited
	case !prohibited && !user.Prohibited:
		return ErrUserNotProhibited
	}

	return s.queries.SetUserProhibited(ctx, userID, prohibited)
}

// ListUsers returns one page of users. Pages start at 1.
func (s *ProfileService) ListUsers(ctx context.Context, page, size int) (*domain.UserPage, error) {
	if page < 1 || size < 1 {
		return nil, ErrInvalidPage
	}

	users, err := s.queries.ListUsers(ctx, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	total, err := s.queries.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &domain.UserPage{Total: total, Users: users}, nil
}
