package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/models"
)

// BusinessHandler serves /api/businesses.
type BusinessHandler struct {
	businessService core.BusinessService
	resp            responder
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(bs core.BusinessService, resp responder) *BusinessHandler {
	return &BusinessHandler{businessService: bs, resp: resp}
}

// ListBusinesses handles GET /api/businesses. Structured filters, the keyword
// and the page are read from the query string; the next page's cursor is
// returned in the X-Next-Cursor header.
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	filter := models.BusinessFilter{
		OwnerID:        c.Query("ownerId"),
		MainCategoryID: c.Query("mainCategoryId"),
		SubCategoryID:  c.Query("subCategoryId"),
		Keyword:        c.Query("keyword"),
	}
	page := models.Page{Cursor: c.Query("cursor")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > core.MaxPageSize {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "limit must be an integer between 1 and " + strconv.Itoa(core.MaxPageSize)})
			return
		}
		page.Limit = limit
	}

	businesses, next, err := h.businessService.List(c.Request.Context(), filter, page)
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve businesses")
		return
	}
	if next != "" {
		c.Header(NextCursorHeader, next)
	}
	if businesses == nil {
		businesses = []*models.Business{}
	}
	c.JSON(http.StatusOK, businesses)
}

// GetBusiness handles GET /api/businesses/:id.
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, err := h.businessService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve business")
		return
	}
	c.JSON(http.StatusOK, business)
}

// CreateBusiness handles POST /api/businesses and answers with the stored
// business flattened next to its id.
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var req models.CreateBusinessRequest
	if !bindJSON(c, &req, "Business name, ownerId, ownerName, and mainCategoryId are required") {
		return
	}

	business, err := h.businessService.Create(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err, "Failed to create business")
		return
	}
	c.JSON(http.StatusCreated, BusinessCreatedResponse{
		Message:    "Business created successfully",
		BusinessID: business.ID,
		Business:   business,
	})
}

// UpdateBusiness handles PUT /api/businesses/:id.
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	id := c.Param("id")
	var req models.UpdateBusinessRequest
	if !bindJSON(c, &req, "Invalid business update") {
		return
	}
	if err := h.businessService.Update(c.Request.Context(), id, req); err != nil {
		h.resp.fail(c, err, "Failed to update business")
		return
	}
	c.JSON(http.StatusOK, BusinessAckResponse{Message: "Business updated successfully", BusinessID: id})
}

// DeleteBusiness handles DELETE /api/businesses/:id.
func (h *BusinessHandler) DeleteBusiness(c *gin.Context) {
	id := c.Param("id")
	if err := h.businessService.Delete(c.Request.Context(), id); err != nil {
		h.resp.fail(c, err, "Failed to delete business")
		return
	}
	c.JSON(http.StatusOK, BusinessAckResponse{Message: "Business deleted successfully", BusinessID: id})
}
