package db

import (
	"context"
	"time"

	"bizboard-backend-go/internal/models"
)

// UserRepository stores profile documents keyed by identity UID.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// Set writes the whole document, replacing any existing one.
	Set(ctx context.Context, user *models.User) error
	// Merge writes only the given fields, creating the document if needed.
	Merge(ctx context.Context, userID string, fields map[string]interface{}) error
	// Update writes only the given fields and fails with ErrNotFound if the document is missing.
	Update(ctx context.Context, userID string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
}

// BusinessRepository stores directory listings.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) (string, error)
	GetByID(ctx context.Context, businessID string) (*models.Business, error)
	// List applies the structured filters in the store and the keyword while
	// scanning. It returns the cursor of the next page, or "" when exhausted
	// or when page.Limit is zero.
	List(ctx context.Context, filter models.BusinessFilter, page models.Page) ([]*models.Business, string, error)
	Update(ctx context.Context, businessID string, fields map[string]interface{}) error
	Delete(ctx context.Context, businessID string) error
}

// CategoryRepository stores the two-level category taxonomy.
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, categoryID string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (string, error)
	// Rename updates the category name and the denormalized mainCategoryName
	// of every business referencing it in a single transaction. It returns the
	// number of businesses rewritten.
	Rename(ctx context.Context, categoryID, name string, at time.Time) (int, error)
	Delete(ctx context.Context, categoryID string) error

	ListSubcategories(ctx context.Context, parentID string) ([]models.Subcategory, error)
	GetSubcategory(ctx context.Context, parentID, subcategoryID string) (*models.Subcategory, error)
	CreateSubcategory(ctx context.Context, parentID string, sub *models.Subcategory) (string, error)
	// RenameSubcategory is Rename for subCategoryName.
	RenameSubcategory(ctx context.Context, parentID, subcategoryID, name string, at time.Time) (int, error)
	DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error
}

// ReviewRepository stores reviews.
type ReviewRepository interface {
	// CreateUnique inserts the review unless one by the same user for the same
	// business exists, in which case it returns ErrAlreadyExists.
	CreateUnique(ctx context.Context, review *models.Review) (string, error)
	// ListByBusiness returns reviews newest first.
	ListByBusiness(ctx context.Context, businessID string) ([]*models.Review, error)
}
