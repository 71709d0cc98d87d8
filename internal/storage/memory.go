package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Object is a stored blob held by MemoryStore.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore is an in-process object store used in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	bucket  string
}

// NewMemoryStore returns an empty store whose URLs point at bucket.
func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object), bucket: bucket}
}

// PutPublic reads body fully and stores it under key.
func (s *MemoryStore) PutPublic(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("read object %s: %w", key, err)
	}
	s.mu.Lock()
	s.objects[key] = Object{ContentType: contentType, Data: buf.Bytes()}
	s.mu.Unlock()
	return PublicURL(s.bucket, key), nil
}

// Get returns the stored object and whether it exists.
func (s *MemoryStore) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}
