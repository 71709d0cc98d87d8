package models

import "time"

// Review is immutable once created. At most one exists per (BusinessID, UserID).
type Review struct {
	ID         string    `json:"id" firestore:"-"`
	BusinessID string    `json:"businessId" firestore:"businessId"`
	UserID     string    `json:"userId" firestore:"userId"`
	UserName   string    `json:"userName" firestore:"userName"`
	Rating     int       `json:"rating" firestore:"rating"`
	Comment    string    `json:"comment" firestore:"comment"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

type ReviewSummary struct {
	BusinessID    string  `json:"businessId"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}
