package core

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const imagePrefix = "images/"

type uploadService struct {
	store  ObjectStore
	logger *zap.Logger
	newID  func() string
}

// NewUploadService creates an UploadService that writes to store.
func NewUploadService(store ObjectStore, logger *zap.Logger) UploadService {
	return &uploadService{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// UploadImage stores the file under a collision-free key and returns its
// public URL. Content is not inspected.
func (s *uploadService) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if body == nil {
		return "", invalid("No image file provided.")
	}
	key := s.imageKey(filename)
	url, err := s.store.PutPublic(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.logger.Info("image uploaded", zap.String("key", key))
	return url, nil
}

func (s *uploadService) imageKey(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return imagePrefix + s.newID() + "-" + name
}
