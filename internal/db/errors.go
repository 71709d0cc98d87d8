package db

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when a create would overwrite or duplicate a document.
	ErrAlreadyExists = errors.New("document already exists")
)

// wrapStoreErr translates Firestore status codes into package sentinels and
// annotates everything else with the operation that failed.
func wrapStoreErr(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w", msg, ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
