package models

import "time"

// Category is a top-level category. Subcategories live in a nested
// collection and are attached only when listing.
type Category struct {
	ID            string        `json:"id" firestore:"-"`
	Name          string        `json:"name" firestore:"name"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
	Subcategories []Subcategory `json:"subcategories" firestore:"-"`
}

type Subcategory struct {
	ID        string     `json:"id" firestore:"-"`
	Name      string     `json:"name" firestore:"name"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}
