package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bizboard-backend-go/internal/api"
	"bizboard-backend-go/internal/config"
	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/db"
	"bizboard-backend-go/internal/firebase"
	"bizboard-backend-go/internal/middleware"
	"bizboard-backend-go/internal/opendata"
	"bizboard-backend-go/internal/storage"
	"bizboard-backend-go/pkg/cache"
)

const serviceName = "bizboard"

func main() {
	// --- 1. Load .env outside release mode ---
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: no .env file loaded:", err)
		}
	}

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 3. Initialize Logger (Zap) ---
	zapLogger, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded.", zap.String("ginMode", appConfig.GinMode))

	// --- 4. Initialize Firebase Admin SDK (Firestore, Auth, Storage) ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := firebase.InitFirebase(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()

	objectStore, err := storage.NewBucketStore(clients.Storage, clients.Bucket)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to open storage bucket", zap.Error(err))
	}

	// --- 5. Open-data cache: Redis when configured, in-process otherwise ---
	var localityCache cache.Cache = cache.NewMemoryCache()
	if appConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(initCtx, cache.RedisConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		} else {
			defer redisCache.Close()
			localityCache = redisCache
			zapLogger.Info("Redis cache connected", zap.String("addr", appConfig.RedisAddr))
		}
	}

	// --- 6. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	businessRepo := db.NewFirestoreBusinessRepository(clients.Firestore)
	categoryRepo := db.NewFirestoreCategoryRepository(clients.Firestore)
	reviewRepo := db.NewFirestoreReviewRepository(clients.Firestore)

	// --- 7. Initialize Services ---
	openData := opendata.New(opendata.Config{
		BaseURL:           appConfig.OpenDataBaseURL,
		CitiesResourceID:  appConfig.OpenDataCitiesResourceID,
		StreetsResourceID: appConfig.OpenDataStreetsResourceID,
		CitiesLimit:       appConfig.OpenDataCitiesLimit,
		StreetsLimit:      appConfig.OpenDataStreetsLimit,
		Timeout:           appConfig.OpenDataTimeout,
	})
	services := api.Services{
		Auth:       core.NewAuthService(firebase.NewIdentity(clients.Auth), userRepo, zapLogger),
		Users:      core.NewUserService(userRepo),
		Businesses: core.NewBusinessService(businessRepo, categoryRepo, zapLogger),
		Categories: core.NewCategoryService(categoryRepo, zapLogger),
		Reviews:    core.NewReviewService(reviewRepo, zapLogger),
		Uploads:    core.NewUploadService(objectStore, zapLogger),
		Localities: core.NewLocalityService(openData, localityCache, appConfig.OpenDataCacheTTL, zapLogger),
	}
	zapLogger.Info("Core services initialized.")

	// --- 8. Setup Gin HTTP Engine and Global Middleware ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.PrometheusMetrics(serviceName))
	router.Use(middleware.CORSMiddleware(appConfig.ClientURL))
	if appConfig.ClientURL == "" {
		zapLogger.Warn("CLIENT_URL is not configured; CORS allows every origin.")
	}

	// --- 9. Setup API Routes ---
	authMW := middleware.NewAuthMiddleware(clients.Auth, zapLogger)
	api.SetupRoutes(router, appConfig, zapLogger, authMW, services)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting gracefully.")
}

// newLogger builds a production logger in release mode and a development
// logger otherwise, at the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapConfig := zap.NewDevelopmentConfig()
	if cfg.IsRelease() {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = level
	return zapConfig.Build()
}
