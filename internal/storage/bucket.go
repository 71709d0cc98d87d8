package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	fbstorage "firebase.google.com/go/v4/storage"
)

const publicURLBase = "https://storage.googleapis.com"

// BucketStore writes objects to a Cloud Storage bucket and grants public read.
type BucketStore struct {
	bucket *gcs.BucketHandle
	name   string
}

// NewBucketStore resolves bucketName through the Firebase storage client.
func NewBucketStore(client *fbstorage.Client, bucketName string) (*BucketStore, error) {
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketName, err)
	}
	return &BucketStore{bucket: bucket, name: bucketName}, nil
}

// PutPublic streams body to key, makes the object world-readable and
// returns its public URL.
func (s *BucketStore) PutPublic(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	obj := s.bucket.Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("make object %s public: %w", key, err)
	}
	return PublicURL(s.name, key), nil
}

// PublicURL returns the anonymous download URL of an object.
func PublicURL(bucket, key string) string {
	return publicURLBase + "/" + bucket + "/" + (&url.URL{Path: key}).EscapedPath()
}
