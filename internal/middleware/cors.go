package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows clientURL as the only origin, or every origin when
// clientURL is empty.
func CORSMiddleware(clientURL string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID, "X-Next-Cursor"},
		MaxAge:        12 * time.Hour,
	}
	if clientURL == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{clientURL}
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
