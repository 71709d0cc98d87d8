package models

import (
	"strings"
	"time"
)

// BusinessStatusActive is assigned to every newly created business.
const BusinessStatusActive = "active"

type Address struct {
	Street         string `json:"street" firestore:"street"`
	City           string `json:"city" firestore:"city"`
	State          string `json:"state,omitempty" firestore:"state,omitempty"`
	ZipCode        string `json:"zipCode,omitempty" firestore:"zipCode,omitempty"`
	Country        string `json:"country,omitempty" firestore:"country,omitempty"`
	BuildingNumber string `json:"buildingNumber,omitempty" firestore:"buildingNumber,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone" firestore:"phone"`
	Email   string `json:"email" firestore:"email"`
	Website string `json:"website" firestore:"website"`
}

// Business is a directory listing. MainCategoryName and SubCategoryName are
// denormalized copies of the referenced category names.
type Business struct {
	ID                string            `json:"id" firestore:"-"`
	Name              string            `json:"name" firestore:"name"`
	Description       string            `json:"description" firestore:"description"`
	MainCategoryID    string            `json:"mainCategoryId" firestore:"mainCategoryId"`
	MainCategoryName  string            `json:"mainCategoryName" firestore:"mainCategoryName"`
	SubCategoryID     string            `json:"subCategoryId,omitempty" firestore:"subCategoryId,omitempty"`
	SubCategoryName   string            `json:"subCategoryName,omitempty" firestore:"subCategoryName,omitempty"`
	Address           Address           `json:"address" firestore:"address"`
	Contact           Contact           `json:"contact" firestore:"contact"`
	OwnerID           string            `json:"ownerId" firestore:"ownerId"`
	OwnerName         string            `json:"ownerName" firestore:"ownerName"`
	Status            string            `json:"status" firestore:"status"`
	Images            []string          `json:"images" firestore:"images"`
	HoursOfOperation  map[string]string `json:"hoursOfOperation" firestore:"hoursOfOperation"`
	YearsOfExperience string            `json:"yearsOfExperience" firestore:"yearsOfExperience"`
	ProfileImageURL   string            `json:"profileImageUrl,omitempty" firestore:"profileImageUrl,omitempty"`
	CreatedAt         time.Time         `json:"createdAt" firestore:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt" firestore:"updatedAt"`
}

// MatchesKeyword reports whether keyword occurs, ignoring case, in the name,
// description or either category name. An empty keyword matches everything.
func (b *Business) MatchesKeyword(keyword string) bool {
	if keyword == "" {
		return true
	}
	k := strings.ToLower(keyword)
	for _, field := range []string{b.Name, b.Description, b.MainCategoryName, b.SubCategoryName} {
		if strings.Contains(strings.ToLower(field), k) {
			return true
		}
	}
	return false
}

// BusinessFilter holds the optional equality filters and keyword of a listing query.
type BusinessFilter struct {
	OwnerID        string
	MainCategoryID string
	SubCategoryID  string
	Keyword        string
}

// Page selects a window of an ordered listing. A zero Limit means unbounded.
type Page struct {
	Limit  int
	Cursor string
}
