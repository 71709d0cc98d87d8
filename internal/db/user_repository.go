package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bizboard-backend-go/internal/models"
)

const usersCollection = "users"

type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository returns a UserRepository backed by the users collection.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID)
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty")
	}
	snap, err := r.doc(userID).Get(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "get user '%s'", userID)
	}
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user '%s': %w", userID, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) List(ctx context.Context) ([]*models.User, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	users := make([]*models.User, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapStoreErr(err, "list users")
		}
		var user models.User
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("decode user '%s': %w", snap.Ref.ID, err)
		}
		user.ID = snap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

func (r *firestoreUserRepository) Set(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty")
	}
	_, err := r.doc(user.ID).Set(ctx, user)
	return wrapStoreErr(err, "set user '%s'", user.ID)
}

// Merge writes fields with MergeAll, creating the document if needed.
func (r *firestoreUserRepository) Merge(ctx context.Context, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return errors.New("userID cannot be empty")
	}
	_, err := r.doc(userID).Set(ctx, fields, firestore.MergeAll)
	return wrapStoreErr(err, "merge user '%s'", userID)
}

// Update fails with ErrNotFound when the document does not exist.
func (r *firestoreUserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return errors.New("userID cannot be empty")
	}
	_, err := r.doc(userID).Update(ctx, toUpdates(fields))
	return wrapStoreErr(err, "update user '%s'", userID)
}

func (r *firestoreUserRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.doc(userID).Delete(ctx)
	return wrapStoreErr(err, "delete user '%s'", userID)
}

// toUpdates converts a field map into Firestore update paths. Keys are
// top-level field names.
func toUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return updates
}
