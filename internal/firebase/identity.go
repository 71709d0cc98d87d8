package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"bizboard-backend-go/internal/core"
)

// Identity adapts the Firebase Auth client to core.IdentityProvider.
type Identity struct {
	client *auth.Client
}

// NewIdentity wraps an initialized Firebase Auth client.
func NewIdentity(client *auth.Client) *Identity {
	return &Identity{client: client}
}

// CreateAccount creates an email/password account and returns its UID.
// An email that is already registered yields core.ErrEmailTaken.
func (i *Identity) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	record, err := i.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", core.ErrEmailTaken
		}
		return "", fmt.Errorf("auth.CreateUser: %w", err)
	}
	return record.UID, nil
}

// SetRole replaces the account's custom claims with {"role": role}.
func (i *Identity) SetRole(ctx context.Context, uid, role string) error {
	if err := i.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		if auth.IsUserNotFound(err) {
			return fmt.Errorf("%w: %s", core.ErrUserNotFound, uid)
		}
		return fmt.Errorf("auth.SetCustomUserClaims: %w", err)
	}
	return nil
}

// LookupByEmail resolves an email to a UID.
func (i *Identity) LookupByEmail(ctx context.Context, email string) (string, error) {
	record, err := i.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", core.ErrAccountNotFound
		}
		return "", fmt.Errorf("auth.GetUserByEmail: %w", err)
	}
	return record.UID, nil
}
