package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"bizboard-backend-go/internal/config"
)

// Clients bundles the Firebase Admin SDK clients used by the server.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Storage   *storage.Client
	Bucket    string
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// credentialsOption picks the service account source: a credentials file,
// a base64-encoded JSON key, or nil for Application Default Credentials.
func credentialsOption(cfg *config.Config, logger *zap.Logger) (option.ClientOption, error) {
	switch {
	case cfg.GoogleApplicationCredentials != "":
		if _, err := os.Stat(cfg.GoogleApplicationCredentials); errors.Is(err, os.ErrNotExist) {
			logger.Warn("credentials file does not exist", zap.String("path", cfg.GoogleApplicationCredentials))
		}
		logger.Info("using Firebase credentials file", zap.String("path", cfg.GoogleApplicationCredentials))
		return option.WithCredentialsFile(cfg.GoogleApplicationCredentials), nil
	case cfg.FirebaseServiceAccountJSONBase64 != "":
		key, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not valid base64: %w", err)
		}
		logger.Info("using base64 encoded Firebase service account")
		return option.WithCredentialsJSON(key), nil
	default:
		logger.Info("using Application Default Credentials for Firebase")
		return nil, nil
	}
}

// InitFirebase initializes the Admin SDK app and its Firestore, Auth and
// Storage clients.
func InitFirebase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Clients, error) {
	if cfg == nil {
		return nil, errors.New("InitFirebase: config cannot be nil")
	}

	opt, err := credentialsOption(cfg, logger)
	if err != nil {
		return nil, err
	}
	appConfig := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.FirebaseStorageBucket,
	}

	var app *firebase.App
	if opt != nil {
		app, err = firebase.NewApp(ctx, appConfig, opt)
	} else {
		app, err = firebase.NewApp(ctx, appConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("app.Storage: %w", err)
	}

	return &Clients{
		Firestore: fs,
		Auth:      authClient,
		Storage:   storageClient,
		Bucket:    cfg.FirebaseStorageBucket,
	}, nil
}
