package models

import "time"

// Roles stored in the identity provider's custom claims and mirrored on the user document.
const (
	RoleUser          = "user"
	RoleBusinessOwner = "business_owner"
	RoleAdmin         = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleBusinessOwner, RoleAdmin:
		return true
	}
	return false
}

// User is the profile document stored under users/{uid}.
type User struct {
	ID          string    `json:"id" firestore:"-"` // identity provider UID, also the document ID
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Role        string    `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt" firestore:"lastLoginAt"`
}
