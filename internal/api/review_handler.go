package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/models"
)

// ReviewHandler serves /api/reviews.
type ReviewHandler struct {
	reviewService core.ReviewService
	resp          responder
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(rs core.ReviewService, resp responder) *ReviewHandler {
	return &ReviewHandler{reviewService: rs, resp: resp}
}

// ListReviews returns the business's reviews, newest first.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve reviews")
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// ReviewSummary handles GET /api/reviews/:businessId/summary.
func (h *ReviewHandler) ReviewSummary(c *gin.Context) {
	summary, err := h.reviewService.Summary(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve reviews")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SubmitReview handles POST /api/reviews. A second review by the same user
// for the same business is rejected with 409.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req models.SubmitReviewRequest
	if !bindJSON(c, &req, "Missing required review fields") {
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err, "Failed to submit review")
		return
	}
	c.JSON(http.StatusCreated, ReviewCreatedResponse{Message: "Review submitted successfully", ReviewID: review.ID})
}
