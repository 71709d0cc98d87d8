package core

import (
	"context"
	"encoding/json"
	"io"

	"bizboard-backend-go/internal/models"
)

// AuthService covers account creation, login lookup and role changes.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	UpdateRole(ctx context.Context, userID, role string) error
}

// UserService manages profile documents.
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	Upsert(ctx context.Context, req models.UpsertUserRequest) error
	Update(ctx context.Context, userID string, req models.UpdateUserRequest) error
	Delete(ctx context.Context, userID string) error
}

// BusinessService manages directory listings.
type BusinessService interface {
	List(ctx context.Context, filter models.BusinessFilter, page models.Page) ([]*models.Business, string, error)
	Get(ctx context.Context, businessID string) (*models.Business, error)
	Create(ctx context.Context, req models.CreateBusinessRequest) (*models.Business, error)
	Update(ctx context.Context, businessID string, req models.UpdateBusinessRequest) error
	Delete(ctx context.Context, businessID string) error
}

// CategoryService manages the taxonomy and keeps denormalized names in sync.
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, categoryID string) (*models.Category, error)
	Create(ctx context.Context, name, parentID string) (string, error)
	Rename(ctx context.Context, categoryID, name string) (int, error)
	RenameSubcategory(ctx context.Context, parentID, subcategoryID, name string) (int, error)
	Delete(ctx context.Context, categoryID string) error
	DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error
}

// ReviewService accepts and lists reviews.
type ReviewService interface {
	Submit(ctx context.Context, req models.SubmitReviewRequest) (*models.Review, error)
	List(ctx context.Context, businessID string) ([]*models.Review, error)
	Summary(ctx context.Context, businessID string) (*models.ReviewSummary, error)
}

// UploadService relays files to object storage.
type UploadService interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// LocalityService proxies the national open-data city and street registries.
type LocalityService interface {
	Cities(ctx context.Context) (json.RawMessage, error)
	Streets(ctx context.Context, cityCode string) (json.RawMessage, error)
}

// IdentityProvider is the external account store that issues tokens and
// holds role claims.
type IdentityProvider interface {
	// CreateAccount returns the new UID, or ErrEmailTaken.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	SetRole(ctx context.Context, uid, role string) error
	// LookupByEmail returns the UID, or ErrAccountNotFound.
	LookupByEmail(ctx context.Context, email string) (string, error)
}

// ObjectStore stores a blob and makes it publicly readable.
type ObjectStore interface {
	PutPublic(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// LocalitySource fetches raw registry responses from upstream.
type LocalitySource interface {
	Cities(ctx context.Context) ([]byte, error)
	Streets(ctx context.Context, cityCode string) ([]byte, error)
}
