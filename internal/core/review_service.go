package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizboard-backend-go/internal/db"
	"bizboard-backend-go/internal/models"
)

type reviewService struct {
	reviews db.ReviewRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviews db.ReviewRepository, logger *zap.Logger) ReviewService {
	return &reviewService{
		reviews: reviews,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a review. A second review by the same user for the same
// business fails with ErrAlreadyReviewed.
func (s *reviewService) Submit(ctx context.Context, req models.SubmitReviewRequest) (*models.Review, error) {
	if strings.TrimSpace(req.BusinessID) == "" || strings.TrimSpace(req.UserID) == "" ||
		strings.TrimSpace(req.UserName) == "" || strings.TrimSpace(req.Comment) == "" || req.Rating == nil {
		return nil, invalid("Missing required review fields")
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		return nil, invalid("Rating must be between 1 and 5")
	}

	review := &models.Review{
		BusinessID: req.BusinessID,
		UserID:     req.UserID,
		UserName:   req.UserName,
		Rating:     *req.Rating,
		Comment:    req.Comment,
		CreatedAt:  s.now(),
	}
	if _, err := s.reviews.CreateUnique(ctx, review); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			s.logger.Info("duplicate review rejected",
				zap.String("businessId", req.BusinessID),
				zap.String("userId", req.UserID))
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("submit review: %w", err)
	}
	return review, nil
}

// List returns the business's reviews newest first.
func (s *reviewService) List(ctx context.Context, businessID string) ([]*models.Review, error) {
	reviews, err := s.reviews.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of %s: %w", businessID, err)
	}
	return reviews, nil
}

// Summary reports the review count and the mean rating rounded to one decimal.
func (s *reviewService) Summary(ctx context.Context, businessID string) (*models.ReviewSummary, error) {
	reviews, err := s.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	summary := &models.ReviewSummary{BusinessID: businessID, Count: len(reviews)}
	if len(reviews) == 0 {
		return summary, nil
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	summary.AverageRating = math.Round(float64(total)/float64(len(reviews))*10) / 10
	return summary, nil
}
