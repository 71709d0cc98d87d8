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

// MaxPageSize bounds the limit of a paginated business listing.
const MaxPageSize = 100

type businessService struct {
	businesses db.BusinessRepository
	categories db.CategoryRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewBusinessService creates a BusinessService. categories is used to fill
// in category names the client did not send.
func NewBusinessService(businesses db.BusinessRepository, categories db.CategoryRepository, logger *zap.Logger) BusinessService {
	return &businessService{
		businesses: businesses,
		categories: categories,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *businessService) List(ctx context.Context, filter models.BusinessFilter, page models.Page) ([]*models.Business, string, error) {
	if page.Limit < 0 || page.Limit > MaxPageSize {
		return nil, "", invalid("limit must be between 1 and %d", MaxPageSize)
	}
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	businesses, next, err := s.businesses.List(ctx, filter, page)
	if err != nil {
		return nil, "", fmt.Errorf("list businesses: %w", err)
	}
	return businesses, next, nil
}

func (s *businessService) Get(ctx context.Context, businessID string) (*models.Business, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("get business %s: %w", businessID, err)
	}
	return business, nil
}

// Create stores a new active business. Missing category names are filled
// in from the taxonomy when the referenced categories exist.
func (s *businessService) Create(ctx context.Context, req models.CreateBusinessRequest) (*models.Business, error) {
	if strings.TrimSpace(req.Name) == "" || req.OwnerID == "" || req.OwnerName == "" || req.MainCategoryID == "" {
		return nil, invalid("Business name, ownerId, ownerName, and mainCategoryId are required")
	}

	now := s.now()
	business := &models.Business{
		Name:              req.Name,
		Description:       req.Description,
		MainCategoryID:    req.MainCategoryID,
		MainCategoryName:  req.MainCategoryName,
		SubCategoryID:     req.SubCategoryID,
		SubCategoryName:   req.SubCategoryName,
		Address:           req.Address,
		Contact:           req.Contact,
		OwnerID:           req.OwnerID,
		OwnerName:         req.OwnerName,
		Status:            models.BusinessStatusActive,
		Images:            req.Images,
		HoursOfOperation:  req.HoursOfOperation,
		YearsOfExperience: req.YearsOfExperience,
		ProfileImageURL:   req.ProfileImageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if business.Images == nil {
		business.Images = []string{}
	}
	if business.HoursOfOperation == nil {
		business.HoursOfOperation = map[string]string{}
	}
	s.resolveCategoryNames(ctx, business)

	if _, err := s.businesses.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	s.logger.Info("business created", zap.String("businessId", business.ID), zap.String("ownerId", business.OwnerID))
	return business, nil
}

// resolveCategoryNames fills missing denormalized names from the taxonomy.
// Lookup failures leave the name empty; a dangling reference is tolerated.
func (s *businessService) resolveCategoryNames(ctx context.Context, b *models.Business) {
	if s.categories == nil {
		return
	}
	if b.MainCategoryName == "" {
		if cat, err := s.categories.GetByID(ctx, b.MainCategoryID); err == nil {
			b.MainCategoryName = cat.Name
		} else {
			s.logger.Debug("main category name not resolved", zap.String("categoryId", b.MainCategoryID), zap.Error(err))
		}
	}
	if b.SubCategoryID != "" && b.SubCategoryName == "" {
		if sub, err := s.categories.GetSubcategory(ctx, b.MainCategoryID, b.SubCategoryID); err == nil {
			b.SubCategoryName = sub.Name
		} else {
			s.logger.Debug("subcategory name not resolved", zap.String("subCategoryId", b.SubCategoryID), zap.Error(err))
		}
	}
}

// Update applies a partial update and restamps updatedAt.
func (s *businessService) Update(ctx context.Context, businessID string, req models.UpdateBusinessRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return invalid("Business name cannot be empty")
	}
	if req.MainCategoryID != nil && *req.MainCategoryID == "" {
		return invalid("mainCategoryId cannot be empty")
	}

	fields := updateFields(req)
	fields["updatedAt"] = s.now()
	if err := s.businesses.Update(ctx, businessID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return fmt.Errorf("update business %s: %w", businessID, err)
	}
	return nil
}

func updateFields(req models.UpdateBusinessRequest) map[string]interface{} {
	fields := make(map[string]interface{})
	setString := func(path string, v *string) {
		if v != nil {
			fields[path] = *v
		}
	}
	setString("name", req.Name)
	setString("description", req.Description)
	setString("mainCategoryId", req.MainCategoryID)
	setString("mainCategoryName", req.MainCategoryName)
	setString("subCategoryId", req.SubCategoryID)
	setString("subCategoryName", req.SubCategoryName)
	setString("ownerName", req.OwnerName)
	setString("status", req.Status)
	setString("yearsOfExperience", req.YearsOfExperience)
	setString("profileImageUrl", req.ProfileImageURL)
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Contact != nil {
		fields["contact"] = *req.Contact
	}
	if req.Images != nil {
		fields["images"] = *req.Images
	}
	if req.HoursOfOperation != nil {
		fields["hoursOfOperation"] = *req.HoursOfOperation
	}
	return fields
}

// Delete removes the business without checking ownership.
func (s *businessService) Delete(ctx context.Context, businessID string) error {
	if err := s.businesses.Delete(ctx, businessID); err != nil {
		return fmt.Errorf("delete business %s: %w", businessID, err)
	}
	s.logger.Info("business deleted", zap.String("businessId", businessID))
	return nil
}
