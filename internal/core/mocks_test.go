package core

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"bizboard-backend-go/internal/models"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserRepository) Set(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Merge(ctx context.Context, userID string, fields map[string]interface{}) error {
	return m.Called(ctx, userID, fields).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	return m.Called(ctx, userID, fields).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock Business Repository ---

type mockBusinessRepository struct {
	mock.Mock
}

func (m *mockBusinessRepository) Create(ctx context.Context, business *models.Business) (string, error) {
	args := m.Called(ctx, business)
	return args.String(0), args.Error(1)
}

func (m *mockBusinessRepository) GetByID(ctx context.Context, businessID string) (*models.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockBusinessRepository) List(ctx context.Context, filter models.BusinessFilter, page models.Page) ([]*models.Business, string, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*models.Business), args.String(1), args.Error(2)
}

func (m *mockBusinessRepository) Update(ctx context.Context, businessID string, fields map[string]interface{}) error {
	return m.Called(ctx, businessID, fields).Error(0)
}

func (m *mockBusinessRepository) Delete(ctx context.Context, businessID string) error {
	return m.Called(ctx, businessID).Error(0)
}

// --- Mock Category Repository ---

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, categoryID string) (*models.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *models.Category) (string, error) {
	args := m.Called(ctx, category)
	return args.String(0), args.Error(1)
}

func (m *mockCategoryRepository) Rename(ctx context.Context, categoryID, name string, at time.Time) (int, error) {
	args := m.Called(ctx, categoryID, name, at)
	return args.Int(0), args.Error(1)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

func (m *mockCategoryRepository) ListSubcategories(ctx context.Context, parentID string) ([]models.Subcategory, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subcategory), args.Error(1)
}

func (m *mockCategoryRepository) GetSubcategory(ctx context.Context, parentID, subcategoryID string) (*models.Subcategory, error) {
	args := m.Called(ctx, parentID, subcategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func (m *mockCategoryRepository) CreateSubcategory(ctx context.Context, parentID string, sub *models.Subcategory) (string, error) {
	args := m.Called(ctx, parentID, sub)
	return args.String(0), args.Error(1)
}

func (m *mockCategoryRepository) RenameSubcategory(ctx context.Context, parentID, subcategoryID, name string, at time.Time) (int, error) {
	args := m.Called(ctx, parentID, subcategoryID, name, at)
	return args.Int(0), args.Error(1)
}

func (m *mockCategoryRepository) DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error {
	return m.Called(ctx, parentID, subcategoryID).Error(0)
}

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) CreateUnique(ctx context.Context, review *models.Review) (string, error) {
	args := m.Called(ctx, review)
	return args.String(0), args.Error(1)
}

func (m *mockReviewRepository) ListByBusiness(ctx context.Context, businessID string) ([]*models.Review, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

// --- Mock collaborators ---

type mockIdentityProvider struct {
	mock.Mock
}

func (m *mockIdentityProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}

func (m *mockIdentityProvider) SetRole(ctx context.Context, uid, role string) error {
	return m.Called(ctx, uid, role).Error(0)
}

func (m *mockIdentityProvider) LookupByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) PutPublic(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

type mockLocalitySource struct {
	mock.Mock
}

func (m *mockLocalitySource) Cities(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockLocalitySource) Streets(ctx context.Context, cityCode string) ([]byte, error) {
	args := m.Called(ctx, cityCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
