package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
)

// imageFormField is the multipart field that carries the uploaded file.
const imageFormField = "image"

// UploadHandler relays images to object storage.
type UploadHandler struct {
	uploadService core.UploadService
	resp          responder
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(us core.UploadService, resp responder) *UploadHandler {
	return &UploadHandler{uploadService: us, resp: resp}
}

// UploadImage handles POST /api/uploads/image and answers with the public URL.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile(imageFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "No image file provided."})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.resp.fail(c, err, "Failed to upload image.")
		return
	}
	defer file.Close()

	url, err := h.uploadService.UploadImage(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.resp.fail(c, err, "Failed to upload image.")
		return
	}
	c.JSON(http.StatusOK, UploadResponse{URL: url})
}
