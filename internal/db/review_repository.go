package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bizboard-backend-go/internal/models"
)

const reviewsCollection = "reviews"

type firestoreReviewRepository struct {
	client *firestore.Client
}

// NewFirestoreReviewRepository returns a ReviewRepository backed by the reviews collection.
func NewFirestoreReviewRepository(client *firestore.Client) ReviewRepository {
	return &firestoreReviewRepository{client: client}
}

func (r *firestoreReviewRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(reviewsCollection)
}

// CreateUnique checks for an existing (businessId, userId) review and inserts
// the new one in the same transaction, so two concurrent submissions cannot
// both pass the check.
func (r *firestoreReviewRepository) CreateUnique(ctx context.Context, review *models.Review) (string, error) {
	existing := r.collection().
		Where("businessId", "==", review.BusinessID).
		Where("userId", "==", review.UserID).
		Limit(1)
	ref := r.collection().NewDoc()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(existing).GetAll()
		if err != nil {
			return err
		}
		if len(snaps) > 0 {
			return ErrAlreadyExists
		}
		return tx.Create(ref, review)
	})
	if err != nil {
		return "", wrapStoreErr(err, "create review for business '%s' by user '%s'", review.BusinessID, review.UserID)
	}
	review.ID = ref.ID
	return ref.ID, nil
}

func (r *firestoreReviewRepository) ListByBusiness(ctx context.Context, businessID string) ([]*models.Review, error) {
	iter := r.collection().
		Where("businessId", "==", businessID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	reviews := make([]*models.Review, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapStoreErr(err, "list reviews of business '%s'", businessID)
		}
		var review models.Review
		if err := snap.DataTo(&review); err != nil {
			return nil, fmt.Errorf("decode review '%s': %w", snap.Ref.ID, err)
		}
		review.ID = snap.Ref.ID
		reviews = append(reviews, &review)
	}
	return reviews, nil
}
