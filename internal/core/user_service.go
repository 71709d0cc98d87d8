package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizboard-backend-go/internal/db"
	"bizboard-backend-go/internal/models"
)

type userService struct {
	users db.UserRepository
	now   func() time.Time
}

// NewUserService creates a UserService.
func NewUserService(users db.UserRepository) UserService {
	return &userService{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

// Upsert merges a profile document, creating it when the identity exists but
// no profile was written yet.
func (s *userService) Upsert(ctx context.Context, req models.UpsertUserRequest) error {
	id := strings.TrimSpace(req.ID)
	if id == "" || strings.TrimSpace(req.Email) == "" {
		return invalid("User ID and email are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return invalid("Unknown role %q.", role)
	}
	now := s.now()
	fields := map[string]interface{}{
		"email":       req.Email,
		"role":        role,
		"createdAt":   now,
		"lastLoginAt": now,
	}
	if req.DisplayName != "" {
		fields["displayName"] = req.DisplayName
	}
	if err := s.users.Merge(ctx, id, fields); err != nil {
		return fmt.Errorf("upsert user %s: %w", id, err)
	}
	return nil
}

// Update writes only the fields set in req.
func (s *userService) Update(ctx context.Context, userID string, req models.UpdateUserRequest) error {
	fields := make(map[string]interface{})
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.DisplayName != nil {
		fields["displayName"] = *req.DisplayName
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return invalid("Unknown role %q.", *req.Role)
		}
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return invalid("No fields to update")
	}
	if err := s.users.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user %s: %w", userID, err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}
