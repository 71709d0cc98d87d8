package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizboard-backend-go/internal/core"
)

// responder writes error responses. Internal errors are logged and their
// cause is echoed in the "error" field only when exposeDetails is set.
type responder struct {
	logger        *zap.Logger
	exposeDetails bool
}

func (r responder) fail(c *gin.Context, err error, fallback string) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		r.logger.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		resp := ErrorResponse{Message: fallback}
		if r.exposeDetails {
			resp.Error = err.Error()
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(status, ErrorResponse{Message: message})
}

// classify maps service errors to an HTTP status and a client message.
func classify(err error) (int, string) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrBusinessNotFound):
		return http.StatusNotFound, "Business not found"
	case errors.Is(err, core.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found"
	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, core.ErrEmailTaken):
		return http.StatusConflict, "Email already in use."
	case errors.Is(err, core.ErrAlreadyReviewed):
		return http.StatusConflict, "You have already reviewed this business."
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, core.ErrAccountNotFound):
		return http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	}
	return http.StatusInternalServerError, ""
}

// bindJSON binds and validates the body into req. On failure it writes a
// 400 with message and the validator's detail and returns false.
func bindJSON(c *gin.Context, req interface{}, message string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: message, Error: err.Error()})
		return false
	}
	return true
}
