package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bizboard-backend-go/internal/models"
)

const businessesCollection = "businesses"

type firestoreBusinessRepository struct {
	client *firestore.Client
}

// NewFirestoreBusinessRepository returns a BusinessRepository backed by the businesses collection.
func NewFirestoreBusinessRepository(client *firestore.Client) BusinessRepository {
	return &firestoreBusinessRepository{client: client}
}

func (r *firestoreBusinessRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(businessesCollection)
}

func (r *firestoreBusinessRepository) Create(ctx context.Context, business *models.Business) (string, error) {
	ref := r.collection().NewDoc()
	if _, err := ref.Create(ctx, business); err != nil {
		return "", wrapStoreErr(err, "create business")
	}
	business.ID = ref.ID
	return ref.ID, nil
}

func (r *firestoreBusinessRepository) GetByID(ctx context.Context, businessID string) (*models.Business, error) {
	if businessID == "" {
		return nil, errors.New("businessID cannot be empty")
	}
	snap, err := r.collection().Doc(businessID).Get(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "get business '%s'", businessID)
	}
	return decodeBusiness(snap)
}

func (r *firestoreBusinessRepository) List(ctx context.Context, filter models.BusinessFilter, page models.Page) ([]*models.Business, string, error) {
	q := r.collection().Query
	if filter.OwnerID != "" {
		q = q.Where("ownerId", "==", filter.OwnerID)
	}
	if filter.MainCategoryID != "" {
		q = q.Where("mainCategoryId", "==", filter.MainCategoryID)
	}
	if filter.SubCategoryID != "" {
		q = q.Where("subCategoryId", "==", filter.SubCategoryID)
	}
	q = q.OrderBy(firestore.DocumentID, firestore.Asc)
	if page.Cursor != "" {
		q = q.StartAfter(page.Cursor)
	}
	// Without a keyword every scanned document is returned, so the store can
	// stop at the page boundary itself.
	if page.Limit > 0 && filter.Keyword == "" {
		q = q.Limit(page.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	businesses := make([]*models.Business, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, "", wrapStoreErr(err, "list businesses")
		}
		business, err := decodeBusiness(snap)
		if err != nil {
			return nil, "", err
		}
		if !business.MatchesKeyword(filter.Keyword) {
			continue
		}
		businesses = append(businesses, business)
		if page.Limit > 0 && len(businesses) == page.Limit {
			return businesses, business.ID, nil
		}
	}
	return businesses, "", nil
}

func (r *firestoreBusinessRepository) Update(ctx context.Context, businessID string, fields map[string]interface{}) error {
	if businessID == "" {
		return errors.New("businessID cannot be empty")
	}
	_, err := r.collection().Doc(businessID).Update(ctx, toUpdates(fields))
	return wrapStoreErr(err, "update business '%s'", businessID)
}

func (r *firestoreBusinessRepository) Delete(ctx context.Context, businessID string) error {
	_, err := r.collection().Doc(businessID).Delete(ctx)
	return wrapStoreErr(err, "delete business '%s'", businessID)
}

func decodeBusiness(snap *firestore.DocumentSnapshot) (*models.Business, error) {
	var business models.Business
	if err := snap.DataTo(&business); err != nil {
		return nil, fmt.Errorf("decode business '%s': %w", snap.Ref.ID, err)
	}
	business.ID = snap.Ref.ID
	return &business, nil
}
