package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizboard-backend-go/internal/db"
	"bizboard-backend-go/internal/models"
)

type authService struct {
	identity IdentityProvider
	users    db.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(identity IdentityProvider, users db.UserRepository, logger *zap.Logger) AuthService {
	return &authService{
		identity: identity,
		users:    users,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup creates the identity account, sets its role claim and writes the
// profile document, in that order. A failure after the account exists leaves
// it in place and is logged.
func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("Email and password are required.")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, invalid("Unknown role %q.", role)
	}

	uid, err := s.identity.CreateAccount(ctx, email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create account for %s: %w", email, err)
	}

	if err := s.identity.SetRole(ctx, uid, role); err != nil {
		s.logger.Error("account created but role claim failed", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("set role for %s: %w", uid, err)
	}

	now := s.now()
	user := &models.User{
		ID:          uid,
		Email:       email,
		DisplayName: req.DisplayName,
		Role:        role,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if err := s.users.Set(ctx, user); err != nil {
		s.logger.Error("account created but profile write failed", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("write profile for %s: %w", uid, err)
	}

	s.logger.Info("user signed up", zap.String("uid", uid), zap.String("role", role))
	return user, nil
}

// Login only confirms an account exists for the email. Password checks are
// done by the identity provider's client SDK.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return "", invalid("Email and password are required.")
	}
	uid, err := s.identity.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", err
		}
		return "", fmt.Errorf("look up account %s: %w", email, err)
	}

	if err := s.users.Merge(ctx, uid, map[string]interface{}{"lastLoginAt": s.now()}); err != nil {
		s.logger.Warn("failed to stamp lastLoginAt", zap.String("uid", uid), zap.Error(err))
	}
	return uid, nil
}

// UpdateRole sets the role claim first, then mirrors it onto the profile document.
func (s *authService) UpdateRole(ctx context.Context, userID, role string) error {
	if userID == "" || role == "" {
		return invalid("User ID and role are required.")
	}
	if !models.ValidRole(role) {
		return invalid("Unknown role %q.", role)
	}
	if err := s.identity.SetRole(ctx, userID, role); err != nil {
		return fmt.Errorf("set role for %s: %w", userID, err)
	}
	if err := s.users.Merge(ctx, userID, map[string]interface{}{"role": role}); err != nil {
		return fmt.Errorf("mirror role for %s: %w", userID, err)
	}
	s.logger.Info("user role updated", zap.String("uid", userID), zap.String("role", role))
	return nil
}
