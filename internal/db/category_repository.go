package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bizboard-backend-go/internal/models"
)

const (
	categoriesCollection    = "categories"
	subcategoriesCollection = "subcategories"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

// NewFirestoreCategoryRepository returns a CategoryRepository backed by the
// categories collection and its nested subcategories collections.
func NewFirestoreCategoryRepository(client *firestore.Client) CategoryRepository {
	return &firestoreCategoryRepository{client: client}
}

func (r *firestoreCategoryRepository) categories() *firestore.CollectionRef {
	return r.client.Collection(categoriesCollection)
}

func (r *firestoreCategoryRepository) subcategories(parentID string) *firestore.CollectionRef {
	return r.categories().Doc(parentID).Collection(subcategoriesCollection)
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	iter := r.categories().Documents(ctx)
	defer iter.Stop()

	categories := make([]*models.Category, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapStoreErr(err, "list categories")
		}
		var category models.Category
		if err := snap.DataTo(&category); err != nil {
			return nil, fmt.Errorf("decode category '%s': %w", snap.Ref.ID, err)
		}
		category.ID = snap.Ref.ID
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, categoryID string) (*models.Category, error) {
	if categoryID == "" {
		return nil, errors.New("categoryID cannot be empty")
	}
	snap, err := r.categories().Doc(categoryID).Get(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "get category '%s'", categoryID)
	}
	var category models.Category
	if err := snap.DataTo(&category); err != nil {
		return nil, fmt.Errorf("decode category '%s': %w", categoryID, err)
	}
	category.ID = snap.Ref.ID
	return &category, nil
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *models.Category) (string, error) {
	ref := r.categories().NewDoc()
	if _, err := ref.Create(ctx, category); err != nil {
		return "", wrapStoreErr(err, "create category")
	}
	category.ID = ref.ID
	return ref.ID, nil
}

// Rename renames the category and rewrites mainCategoryName on its
// businesses in one transaction. It returns the number of businesses updated.
func (r *firestoreCategoryRepository) Rename(ctx context.Context, categoryID, name string, at time.Time) (int, error) {
	ref := r.categories().Doc(categoryID)
	dependents := r.client.Collection(businessesCollection).Where("mainCategoryId", "==", categoryID)
	n, err := r.renameAndPropagate(ctx, ref, dependents, "mainCategoryName", name, at)
	if err != nil {
		return 0, wrapStoreErr(err, "rename category '%s'", categoryID)
	}
	return n, nil
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, categoryID string) error {
	_, err := r.categories().Doc(categoryID).Delete(ctx)
	return wrapStoreErr(err, "delete category '%s'", categoryID)
}

func (r *firestoreCategoryRepository) ListSubcategories(ctx context.Context, parentID string) ([]models.Subcategory, error) {
	iter := r.subcategories(parentID).Documents(ctx)
	defer iter.Stop()

	subs := make([]models.Subcategory, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapStoreErr(err, "list subcategories of '%s'", parentID)
		}
		var sub models.Subcategory
		if err := snap.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("decode subcategory '%s/%s': %w", parentID, snap.Ref.ID, err)
		}
		sub.ID = snap.Ref.ID
		subs = append(subs, sub)
	}
	return subs, nil
}

func (r *firestoreCategoryRepository) GetSubcategory(ctx context.Context, parentID, subcategoryID string) (*models.Subcategory, error) {
	if parentID == "" || subcategoryID == "" {
		return nil, errors.New("parentID and subcategoryID cannot be empty")
	}
	snap, err := r.subcategories(parentID).Doc(subcategoryID).Get(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "get subcategory '%s/%s'", parentID, subcategoryID)
	}
	var sub models.Subcategory
	if err := snap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("decode subcategory '%s/%s': %w", parentID, subcategoryID, err)
	}
	sub.ID = snap.Ref.ID
	return &sub, nil
}

func (r *firestoreCategoryRepository) CreateSubcategory(ctx context.Context, parentID string, sub *models.Subcategory) (string, error) {
	ref := r.subcategories(parentID).NewDoc()
	if _, err := ref.Create(ctx, sub); err != nil {
		return "", wrapStoreErr(err, "create subcategory under '%s'", parentID)
	}
	sub.ID = ref.ID
	return ref.ID, nil
}

// RenameSubcategory is Rename for a subcategory and subCategoryName.
func (r *firestoreCategoryRepository) RenameSubcategory(ctx context.Context, parentID, subcategoryID, name string, at time.Time) (int, error) {
	ref := r.subcategories(parentID).Doc(subcategoryID)
	dependents := r.client.Collection(businessesCollection).Where("subCategoryId", "==", subcategoryID)
	n, err := r.renameAndPropagate(ctx, ref, dependents, "subCategoryName", name, at)
	if err != nil {
		return 0, wrapStoreErr(err, "rename subcategory '%s/%s'", parentID, subcategoryID)
	}
	return n, nil
}

func (r *firestoreCategoryRepository) DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error {
	_, err := r.subcategories(parentID).Doc(subcategoryID).Delete(ctx)
	return wrapStoreErr(err, "delete subcategory '%s/%s'", parentID, subcategoryID)
}

// renameAndPropagate renames the category document and rewrites field on
// every dependent business inside one transaction. All reads happen before
// the first write, as Firestore transactions require.
func (r *firestoreCategoryRepository) renameAndPropagate(
	ctx context.Context,
	ref *firestore.DocumentRef,
	dependents firestore.Query,
	field, name string,
	at time.Time,
) (int, error) {
	var updated int
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		updated = 0
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		snaps, err := tx.Documents(dependents).GetAll()
		if err != nil {
			return err
		}

		if err := tx.Update(ref, []firestore.Update{
			{Path: "name", Value: name},
			{Path: "updatedAt", Value: at},
		}); err != nil {
			return err
		}
		for _, snap := range snaps {
			if err := tx.Update(snap.Ref, []firestore.Update{{Path: field, Value: name}}); err != nil {
				return err
			}
		}
		updated = len(snaps)
		return nil
	})
	return updated, err
}
