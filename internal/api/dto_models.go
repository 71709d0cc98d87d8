package api

import "bizboard-backend-go/internal/models"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is the body of simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

type SignupResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
	Role    string `json:"role"`
}

type LoginResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
}

type UserAckResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// BusinessCreatedResponse flattens the created business next to the message.
type BusinessCreatedResponse struct {
	Message    string `json:"message"`
	BusinessID string `json:"businessId"`
	*models.Business
}

type BusinessAckResponse struct {
	Message    string `json:"message"`
	BusinessID string `json:"businessId"`
}

type CategoryCreatedResponse struct {
	Message    string `json:"message"`
	CategoryID string `json:"categoryId"`
	ParentID   string `json:"parentId,omitempty"`
}

type CategoryRenamedResponse struct {
	Message           string `json:"message"`
	BusinessesUpdated int    `json:"businessesUpdated"`
}

type ReviewCreatedResponse struct {
	Message  string `json:"message"`
	ReviewID string `json:"reviewId"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// NextCursorHeader carries the cursor of the next page of a listing.
const NextCursorHeader = "X-Next-Cursor"
