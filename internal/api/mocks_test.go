package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/mock"

	"bizboard-backend-go/internal/models"
)

// --- Mock Services ---

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) UpdateRole(ctx context.Context, userID, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) Upsert(ctx context.Context, req models.UpsertUserRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockUserService) Update(ctx context.Context, userID string, req models.UpdateUserRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *mockUserService) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockBusinessService struct{ mock.Mock }

func (m *mockBusinessService) List(ctx context.Context, filter models.BusinessFilter, page models.Page) ([]*models.Business, string, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*models.Business), args.String(1), args.Error(2)
}

func (m *mockBusinessService) Get(ctx context.Context, businessID string) (*models.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockBusinessService) Create(ctx context.Context, req models.CreateBusinessRequest) (*models.Business, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockBusinessService) Update(ctx context.Context, businessID string, req models.UpdateBusinessRequest) error {
	return m.Called(ctx, businessID, req).Error(0)
}

func (m *mockBusinessService) Delete(ctx context.Context, businessID string) error {
	return m.Called(ctx, businessID).Error(0)
}

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) List(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *mockCategoryService) Get(ctx context.Context, categoryID string) (*models.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryService) Create(ctx context.Context, name, parentID string) (string, error) {
	args := m.Called(ctx, name, parentID)
	return args.String(0), args.Error(1)
}

func (m *mockCategoryService) Rename(ctx context.Context, categoryID, name string) (int, error) {
	args := m.Called(ctx, categoryID, name)
	return args.Int(0), args.Error(1)
}

func (m *mockCategoryService) RenameSubcategory(ctx context.Context, parentID, subcategoryID, name string) (int, error) {
	args := m.Called(ctx, parentID, subcategoryID, name)
	return args.Int(0), args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

func (m *mockCategoryService) DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error {
	return m.Called(ctx, parentID, subcategoryID).Error(0)
}

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) Submit(ctx context.Context, req models.SubmitReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewService) List(ctx context.Context, businessID string) ([]*models.Review, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *mockReviewService) Summary(ctx context.Context, businessID string) (*models.ReviewSummary, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewSummary), args.Error(1)
}

type mockUploadService struct{ mock.Mock }

func (m *mockUploadService) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)
	return args.String(0), args.Error(1)
}

type mockLocalityService struct{ mock.Mock }

func (m *mockLocalityService) Cities(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockLocalityService) Streets(ctx context.Context, cityCode string) (json.RawMessage, error) {
	args := m.Called(ctx, cityCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// --- Token verifier ---

type stubVerifier map[string]*auth.Token

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := s[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid token")
}
