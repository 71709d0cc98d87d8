package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/middleware"
	"bizboard-backend-go/internal/models"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	authService core.AuthService
	resp        responder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AuthService, resp responder) *AuthHandler {
	return &AuthHandler{authService: as, resp: resp}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req, "Email and password are required.") {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err, "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, SignupResponse{Message: "User created successfully!", UID: user.ID, Role: user.Role})
}

// Login handles POST /api/auth/login. The password is verified client side;
// the server only confirms that the account exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, "Email and password are required.") {
		return
	}

	uid, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err, "Failed to log in.")
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", UID: uid})
}

// UpdateRole handles POST /api/auth/update-role for the token's own account.
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: No token provided."})
		return
	}
	var req models.UpdateRoleRequest
	if !bindJSON(c, &req, "User ID and role are required.") {
		return
	}

	if err := h.authService.UpdateRole(c.Request.Context(), uid, req.Role); err != nil {
		h.resp.fail(c, err, "Failed to update user role.")
		return
	}
	c.JSON(http.StatusOK, SignupResponse{Message: "User role updated successfully!", UID: uid, Role: req.Role})
}
