package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/models"
)

// UserHandler serves the profile documents under /api/users.
type UserHandler struct {
	userService core.UserService
	resp        responder
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, resp responder) *UserHandler {
	return &UserHandler{userService: us, resp: resp}
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve users")
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpsertUser handles POST /api/users. Existing documents are merged.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req models.UpsertUserRequest
	if !bindJSON(c, &req, "User ID and email are required") {
		return
	}
	if err := h.userService.Upsert(c.Request.Context(), req); err != nil {
		h.resp.fail(c, err, "Failed to create/update user")
		return
	}
	c.JSON(http.StatusCreated, UserAckResponse{Message: "User created/updated successfully", UserID: req.ID})
}

// UpdateUser handles PUT /api/users/:id. Only the fields present in the body are written.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	var req models.UpdateUserRequest
	if !bindJSON(c, &req, "Invalid user update") {
		return
	}
	if err := h.userService.Update(c.Request.Context(), id, req); err != nil {
		h.resp.fail(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, UserAckResponse{Message: "User updated successfully", UserID: id})
}

// DeleteUser handles DELETE /api/users/:id. The identity account is not removed.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.resp.fail(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, UserAckResponse{Message: "User deleted successfully", UserID: id})
}
