package models

// Request bodies bound by the HTTP layer. The "notblank" tag is registered on
// gin's validator by the api package.

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role" binding:"omitempty,oneof=user business_owner admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user business_owner admin"`
}

// UpsertUserRequest creates or merges a profile document for an existing identity.
type UpsertUserRequest struct {
	ID          string `json:"id" binding:"required,notblank"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role" binding:"omitempty,oneof=user business_owner admin"`
}

// UpdateUserRequest uses pointers so absent fields are left untouched.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	DisplayName *string `json:"displayName,omitempty"`
	Role        *string `json:"role,omitempty" binding:"omitempty,oneof=user business_owner admin"`
}

type CreateBusinessRequest struct {
	Name              string            `json:"name" binding:"required,notblank"`
	Description       string            `json:"description"`
	MainCategoryID    string            `json:"mainCategoryId" binding:"required,notblank"`
	MainCategoryName  string            `json:"mainCategoryName"`
	SubCategoryID     string            `json:"subCategoryId"`
	SubCategoryName   string            `json:"subCategoryName"`
	Address           Address           `json:"address"`
	Contact           Contact           `json:"contact"`
	OwnerID           string            `json:"ownerId" binding:"required,notblank"`
	OwnerName         string            `json:"ownerName" binding:"required,notblank"`
	Images            []string          `json:"images"`
	HoursOfOperation  map[string]string `json:"hoursOfOperation"`
	YearsOfExperience string            `json:"yearsOfExperience"`
	ProfileImageURL   string            `json:"profileImageUrl"`
}

// UpdateBusinessRequest carries a partial update. Nil fields are not written.
type UpdateBusinessRequest struct {
	Name              *string            `json:"name,omitempty" binding:"omitempty,notblank"`
	Description       *string            `json:"description,omitempty"`
	MainCategoryID    *string            `json:"mainCategoryId,omitempty" binding:"omitempty,notblank"`
	MainCategoryName  *string            `json:"mainCategoryName,omitempty"`
	SubCategoryID     *string            `json:"subCategoryId,omitempty"`
	SubCategoryName   *string            `json:"subCategoryName,omitempty"`
	Address           *Address           `json:"address,omitempty"`
	Contact           *Contact           `json:"contact,omitempty"`
	OwnerName         *string            `json:"ownerName,omitempty" binding:"omitempty,notblank"`
	Status            *string            `json:"status,omitempty"`
	Images            *[]string          `json:"images,omitempty"`
	HoursOfOperation  *map[string]string `json:"hoursOfOperation,omitempty"`
	YearsOfExperience *string            `json:"yearsOfExperience,omitempty"`
	ProfileImageURL   *string            `json:"profileImageUrl,omitempty"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	ParentID string `json:"parentId"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type SubmitReviewRequest struct {
	BusinessID string `json:"businessId" binding:"required,notblank"`
	UserID     string `json:"userId" binding:"required,notblank"`
	UserName   string `json:"userName" binding:"required,notblank"`
	Rating     *int   `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"required,notblank"`
}
