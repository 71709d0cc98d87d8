package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set after a token is verified.
const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
)

// ErrorResponse mirrors api.ErrorResponse; redeclared to avoid an import cycle.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// TokenVerifier verifies identity-provider ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware verifies bearer tokens and exposes the caller's identity
// to downstream handlers.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates the token middleware. verifier is usually the
// Firebase *auth.Client.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if verifier == nil {
		panic("AuthMiddleware requires a non-nil TokenVerifier")
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// bearerToken extracts the credential of a Bearer Authorization header. ok is
// true whenever the scheme is Bearer, even if the token itself is empty, so
// that an empty token is rejected by the verifier rather than ignored.
func bearerToken(header string) (token string, ok bool) {
	const scheme = "Bearer"
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	rest := header[len(scheme):]
	if rest != "" && rest[0] != ' ' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func (m *AuthMiddleware) attach(c *gin.Context, token *auth.Token) {
	c.Set(ContextUserID, token.UID)
	if role, ok := token.Claims["role"].(string); ok {
		c.Set(ContextUserRole, role)
	}
	if email, ok := token.Claims["email"].(string); ok {
		c.Set(ContextUserEmail, email)
	}
}

// OptionalToken verifies a bearer token when one is sent and rejects it with
// 403 if invalid. Requests without a token continue unauthenticated. OPTIONS
// requests and paths under any of skipPrefixes are not inspected.
func (m *AuthMiddleware) OptionalToken(skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		idToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		token, err := m.verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			m.logger.Warn("rejected invalid ID token", zap.String("path", path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "Unauthorized: Invalid token."})
			return
		}
		m.attach(c, token)
		c.Next()
	}
}

// RequireToken rejects requests without a bearer token (401) or with an
// invalid one (403).
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: No token provided."})
			return
		}
		token, err := m.verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			m.logger.Warn("rejected invalid ID token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "Unauthorized: Invalid token."})
			return
		}
		m.attach(c, token)
		c.Next()
	}
}

// UserID returns the verified caller UID, if any.
func UserID(c *gin.Context) (string, bool) {
	uid := c.GetString(ContextUserID)
	return uid, uid != ""
}
