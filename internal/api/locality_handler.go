package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
)

// LocalityHandler proxies the open-data city and street registries. Upstream
// bodies are passed through unchanged.
type LocalityHandler struct {
	localityService core.LocalityService
	resp            responder
}

// NewLocalityHandler creates a new LocalityHandler.
func NewLocalityHandler(ls core.LocalityService, resp responder) *LocalityHandler {
	return &LocalityHandler{localityService: ls, resp: resp}
}

// Cities handles GET /api/israel-data/cities.
func (h *LocalityHandler) Cities(c *gin.Context) {
	body, err := h.localityService.Cities(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch cities data.")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Streets handles GET /api/israel-data/streets?cityCode=.
func (h *LocalityHandler) Streets(c *gin.Context) {
	body, err := h.localityService.Streets(c.Request.Context(), c.Query("cityCode"))
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch streets data.")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
