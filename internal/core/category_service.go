package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bizboard-backend-go/internal/db"
	"bizboard-backend-go/internal/models"
)

// subcategoryFanOut caps concurrent store calls when walking subcategories.
const subcategoryFanOut = 8

type categoryService struct {
	categories db.CategoryRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories db.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns every top-level category with its subcategories attached.
// Subcategory scans run concurrently; the category order is preserved.
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(subcategoryFanOut)
	for _, category := range categories {
		category := category
		g.Go(func() error {
			subs, err := s.categories.ListSubcategories(gctx, category.ID)
			if err != nil {
				return fmt.Errorf("list subcategories of %s: %w", category.ID, err)
			}
			category.Subcategories = subs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, categoryID string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category %s: %w", categoryID, err)
	}
	subs, err := s.categories.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories of %s: %w", categoryID, err)
	}
	category.Subcategories = subs
	return category, nil
}

// Create inserts a top-level category, or a subcategory when parentID is set.
func (s *categoryService) Create(ctx context.Context, name, parentID string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("Category name is required")
	}
	now := s.now()

	if parentID == "" {
		id, err := s.categories.Create(ctx, &models.Category{Name: name, CreatedAt: now})
		if err != nil {
			return "", fmt.Errorf("create category: %w", err)
		}
		return id, nil
	}

	if _, err := s.categories.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrCategoryNotFound
		}
		return "", fmt.Errorf("get parent category %s: %w", parentID, err)
	}
	id, err := s.categories.CreateSubcategory(ctx, parentID, &models.Subcategory{Name: name, CreatedAt: now})
	if err != nil {
		return "", fmt.Errorf("create subcategory under %s: %w", parentID, err)
	}
	return id, nil
}

// Rename renames a category and rewrites mainCategoryName on every business
// that references it.
func (s *categoryService) Rename(ctx context.Context, categoryID, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalid("Category name is required for update")
	}
	n, err := s.categories.Rename(ctx, categoryID, name, s.now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, fmt.Errorf("rename category %s: %w", categoryID, err)
	}
	s.logger.Info("category renamed", zap.String("categoryId", categoryID), zap.Int("businessesUpdated", n))
	return n, nil
}

// RenameSubcategory renames a subcategory and rewrites subCategoryName on
// every business that references it.
func (s *categoryService) RenameSubcategory(ctx context.Context, parentID, subcategoryID, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalid("Subcategory name is required for update")
	}
	n, err := s.categories.RenameSubcategory(ctx, parentID, subcategoryID, name, s.now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, fmt.Errorf("rename subcategory %s/%s: %w", parentID, subcategoryID, err)
	}
	s.logger.Info("subcategory renamed",
		zap.String("categoryId", parentID),
		zap.String("subCategoryId", subcategoryID),
		zap.Int("businessesUpdated", n))
	return n, nil
}

// Delete removes every subcategory, then the category itself. Every
// subcategory delete is attempted even if one fails; on any failure the
// first error is returned and the category document is kept. Businesses
// referencing either keep their now dangling IDs and names.
func (s *categoryService) Delete(ctx context.Context, categoryID string) error {
	subs, err := s.categories.ListSubcategories(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("list subcategories of %s: %w", categoryID, err)
	}

	var g errgroup.Group
	g.SetLimit(subcategoryFanOut)
	for _, sub := range subs {
		subID := sub.ID
		g.Go(func() error {
			return s.categories.DeleteSubcategory(ctx, categoryID, subID)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("delete subcategories of %s: %w", categoryID, err)
	}

	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category %s: %w", categoryID, err)
	}
	s.logger.Info("category deleted", zap.String("categoryId", categoryID), zap.Int("subcategoriesDeleted", len(subs)))
	return nil
}

func (s *categoryService) DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error {
	if err := s.categories.DeleteSubcategory(ctx, parentID, subcategoryID); err != nil {
		return fmt.Errorf("delete subcategory %s/%s: %w", parentID, subcategoryID, err)
	}
	return nil
}
