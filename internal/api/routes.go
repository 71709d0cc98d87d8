package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bizboard-backend-go/internal/config"
	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/middleware"
)

// Services groups the domain services the routes dispatch to.
type Services struct {
	Auth       core.AuthService
	Users      core.UserService
	Businesses core.BusinessService
	Categories core.CategoryService
	Reviews    core.ReviewService
	Uploads    core.UploadService
	Localities core.LocalityService
}

// SetupRoutes registers the /api routes plus /health and /metrics.
// Logging, recovery, metrics and CORS are expected on the router already.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	services Services,
) {
	registerValidators()
	resp := responder{logger: logger, exposeDetails: appConfig.ExposeErrorDetails}

	authHandler := NewAuthHandler(services.Auth, resp)
	userHandler := NewUserHandler(services.Users, resp)
	businessHandler := NewBusinessHandler(services.Businesses, resp)
	categoryHandler := NewCategoryHandler(services.Categories, resp)
	reviewHandler := NewReviewHandler(services.Reviews, resp)
	uploadHandler := NewUploadHandler(services.Uploads, resp)
	localityHandler := NewLocalityHandler(services.Localities, resp)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Bearer tokens are verified when present. Only update-role requires one.
	apiGroup := router.Group("/api", authMW.OptionalToken("/api/auth"))
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/update-role", authMW.RequireToken(), authHandler.UpdateRole)
		}

		usersGroup := apiGroup.Group("/users")
		{
			usersGroup.GET("", userHandler.ListUsers)
			usersGroup.GET("/:id", userHandler.GetUser)
			usersGroup.POST("", userHandler.UpsertUser)
			usersGroup.PUT("/:id", userHandler.UpdateUser)
			usersGroup.DELETE("/:id", userHandler.DeleteUser)
		}

		businessesGroup := apiGroup.Group("/businesses")
		{
			businessesGroup.GET("", businessHandler.ListBusinesses)
			businessesGroup.GET("/:id", businessHandler.GetBusiness)
			businessesGroup.POST("", businessHandler.CreateBusiness)
			businessesGroup.PUT("/:id", businessHandler.UpdateBusiness)
			businessesGroup.DELETE("/:id", businessHandler.DeleteBusiness)
		}

		categoriesGroup := apiGroup.Group("/categories")
		{
			categoriesGroup.GET("", categoryHandler.ListCategories)
			categoriesGroup.GET("/:id", categoryHandler.GetCategory)
			categoriesGroup.POST("", categoryHandler.CreateCategory)
			categoriesGroup.PUT("/:id", categoryHandler.RenameCategory)
			categoriesGroup.DELETE("/:id", categoryHandler.DeleteCategory)
			categoriesGroup.PUT("/:id/subcategories/:subId", categoryHandler.RenameSubcategory)
			categoriesGroup.DELETE("/:id/subcategories/:subId", categoryHandler.DeleteSubcategory)
		}

		reviewsGroup := apiGroup.Group("/reviews")
		{
			reviewsGroup.GET("/:businessId", reviewHandler.ListReviews)
			reviewsGroup.GET("/:businessId/summary", reviewHandler.ReviewSummary)
			reviewsGroup.POST("", reviewHandler.SubmitReview)
		}

		apiGroup.POST("/uploads/image", uploadHandler.UploadImage)

		israelData := apiGroup.Group("/israel-data")
		{
			israelData.GET("/cities", localityHandler.Cities)
			israelData.GET("/streets", localityHandler.Streets)
		}
	}

	logger.Info("routes registered", zap.Int("count", len(router.Routes())))
}
