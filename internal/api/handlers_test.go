package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizboard-backend-go/internal/config"
	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/middleware"
	"bizboard-backend-go/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router     *gin.Engine
	auth       *mockAuthService
	users      *mockUserService
	businesses *mockBusinessService
	categories *mockCategoryService
	reviews    *mockReviewService
	uploads    *mockUploadService
	localities *mockLocalityService
}

func newTestServer() *testServer {
	ts := &testServer{
		router:     gin.New(),
		auth:       new(mockAuthService),
		users:      new(mockUserService),
		businesses: new(mockBusinessService),
		categories: new(mockCategoryService),
		reviews:    new(mockReviewService),
		uploads:    new(mockUploadService),
		localities: new(mockLocalityService),
	}
	verifier := stubVerifier{"good": {UID: "uid-1", Claims: map[string]interface{}{"role": "user"}}}
	authMW := middleware.NewAuthMiddleware(verifier, zap.NewNop())

	SetupRoutes(ts.router, &config.Config{ExposeErrorDetails: true}, zap.NewNop(), authMW, Services{
		Auth:       ts.auth,
		Users:      ts.users,
		Businesses: ts.businesses,
		Categories: ts.categories,
		Reviews:    ts.reviews,
		Uploads:    ts.uploads,
		Localities: ts.localities,
	})
	return ts
}

func (ts *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	w := ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

// --- Auth ---

func TestSignup(t *testing.T) {
	ts := newTestServer()
	req := models.SignupRequest{Email: "dana@example.com", Password: "secret1"}
	ts.auth.On("Signup", mock.Anything, req).Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	w := ts.do(http.MethodPost, "/api/auth/signup", `{"email":"dana@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User created successfully!","uid":"u1","role":"user"}`, w.Body.String())
}

func TestSignup_Validation(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/auth/signup", `{"email":"dana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required.", decodeError(t, w).Message)

	w = ts.do(http.MethodPost, "/api/auth/signup", `{"email":"dana@example.com","password":"x","role":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ts.auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_EmailTaken(t *testing.T) {
	ts := newTestServer()
	ts.auth.On("Signup", mock.Anything, mock.Anything).Return(nil, core.ErrEmailTaken)

	w := ts.do(http.MethodPost, "/api/auth/signup", `{"email":"dana@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already in use.", decodeError(t, w).Message)
}

func TestLogin(t *testing.T) {
	ts := newTestServer()
	ts.auth.On("Login", mock.Anything, models.LoginRequest{Email: "a@b.c", Password: "pw"}).Return("u1", nil)
	ts.auth.On("Login", mock.Anything, models.LoginRequest{Email: "nobody@b.c", Password: "pw"}).Return("", core.ErrAccountNotFound)

	w := ts.do(http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Login successful","uid":"u1"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/auth/login", `{"email":"nobody@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", decodeError(t, w).Message)
}

func TestUpdateRole(t *testing.T) {
	ts := newTestServer()
	ts.auth.On("UpdateRole", mock.Anything, "uid-1", models.RoleBusinessOwner).Return(nil)

	w := ts.do(http.MethodPost, "/api/auth/update-role", `{"role":"business_owner"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/api/auth/update-role", `{"role":"business_owner"}`, "Authorization", "Bearer forged")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(http.MethodPost, "/api/auth/update-role", `{"role":"business_owner"}`, "Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User role updated successfully!","uid":"uid-1","role":"business_owner"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/auth/update-role", `{}`, "Authorization", "Bearer good")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID and role are required.", decodeError(t, w).Message)
	ts.auth.AssertNumberOfCalls(t, "UpdateRole", 1)
}

func TestInvalidTokenRejectedOutsideAuth(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/api/businesses", "", "Authorization", "Bearer forged")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized: Invalid token.", decodeError(t, w).Message)
	ts.businesses.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

// --- Users ---

func TestUsers(t *testing.T) {
	ts := newTestServer()
	ts.users.On("Get", mock.Anything, "ghost").Return(nil, fmt.Errorf("get: %w", core.ErrUserNotFound))
	ts.users.On("Upsert", mock.Anything, models.UpsertUserRequest{ID: "u1", Email: "dana@example.com"}).Return(nil)
	ts.users.On("Delete", mock.Anything, "u1").Return(nil)

	w := ts.do(http.MethodGet, "/api/users/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeError(t, w).Message)

	w = ts.do(http.MethodPost, "/api/users", `{"id":"u1","email":"dana@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User created/updated successfully","userId":"u1"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/users", `{"email":"dana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID and email are required", decodeError(t, w).Message)

	w = ts.do(http.MethodDelete, "/api/users/u1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Businesses ---

func TestListBusinesses_FiltersAndCursor(t *testing.T) {
	ts := newTestServer()
	filter := models.BusinessFilter{MainCategoryID: "c1", Keyword: "pizza"}
	page := models.Page{Limit: 2, Cursor: "b0"}
	ts.businesses.On("List", mock.Anything, filter, page).
		Return([]*models.Business{{ID: "b1", Name: "Pizza One"}, {ID: "b2", Name: "Pizza Two"}}, "b2", nil)

	w := ts.do(http.MethodGet, "/api/businesses?mainCategoryId=c1&keyword=pizza&limit=2&cursor=b0", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b2", w.Header().Get(NextCursorHeader))
	var got []models.Business
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
}

func TestListBusinesses_EmptyIsArray(t *testing.T) {
	ts := newTestServer()
	ts.businesses.On("List", mock.Anything, models.BusinessFilter{}, models.Page{}).Return(nil, "", nil)

	w := ts.do(http.MethodGet, "/api/businesses", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	assert.Empty(t, w.Header().Get(NextCursorHeader))
}

func TestListBusinesses_BadLimit(t *testing.T) {
	ts := newTestServer()
	for _, limit := range []string{"0", "101", "ten", "-1"} {
		w := ts.do(http.MethodGet, "/api/businesses?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
	ts.businesses.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBusiness_NotFound(t *testing.T) {
	ts := newTestServer()
	ts.businesses.On("Get", mock.Anything, "missing").Return(nil, fmt.Errorf("get: %w", core.ErrBusinessNotFound))

	w := ts.do(http.MethodGet, "/api/businesses/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Business not found", decodeError(t, w).Message)
}

func TestCreateBusiness(t *testing.T) {
	ts := newTestServer()
	ts.businesses.On("Create", mock.Anything, mock.MatchedBy(func(req models.CreateBusinessRequest) bool {
		return req.Name == "Cohen Plumbing" && req.MainCategoryID == "c1"
	})).Return(&models.Business{ID: "b1", Name: "Cohen Plumbing", MainCategoryID: "c1", MainCategoryName: "Plumbing", Status: models.BusinessStatusActive}, nil)

	w := ts.do(http.MethodPost, "/api/businesses",
		`{"name":"Cohen Plumbing","mainCategoryId":"c1","ownerId":"u1","ownerName":"Dana"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Business created successfully", body["message"])
	assert.Equal(t, "b1", body["businessId"])
	assert.Equal(t, "b1", body["id"])
	assert.Equal(t, "Plumbing", body["mainCategoryName"])
	assert.Equal(t, "active", body["status"])
}

func TestCreateBusiness_MissingFields(t *testing.T) {
	ts := newTestServer()

	for _, body := range []string{
		`{"mainCategoryId":"c1","ownerId":"u1","ownerName":"Dana"}`,
		`{"name":"   ","mainCategoryId":"c1","ownerId":"u1","ownerName":"Dana"}`,
		`{"name":"X","ownerId":"u1","ownerName":"Dana"}`,
	} {
		w := ts.do(http.MethodPost, "/api/businesses", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Business name, ownerId, ownerName, and mainCategoryId are required", decodeError(t, w).Message)
	}
	ts.businesses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateBusiness(t *testing.T) {
	ts := newTestServer()
	name := "Cohen & Sons"
	ts.businesses.On("Update", mock.Anything, "b1", models.UpdateBusinessRequest{Name: &name}).Return(nil)
	ts.businesses.On("Update", mock.Anything, "missing", mock.Anything).Return(fmt.Errorf("update: %w", core.ErrBusinessNotFound))

	w := ts.do(http.MethodPut, "/api/businesses/b1", `{"name":"Cohen & Sons"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Business updated successfully","businessId":"b1"}`, w.Body.String())

	w = ts.do(http.MethodPut, "/api/businesses/missing", `{"name":"Cohen & Sons"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteBusiness_StoreFailureExposesDetail(t *testing.T) {
	ts := newTestServer()
	ts.businesses.On("Delete", mock.Anything, "b1").Return(errors.New("deadline exceeded"))

	w := ts.do(http.MethodDelete, "/api/businesses/b1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Failed to delete business", resp.Message)
	assert.Equal(t, "deadline exceeded", resp.Error)
}

// --- Categories ---

func TestCreateCategory(t *testing.T) {
	ts := newTestServer()
	ts.categories.On("Create", mock.Anything, "Plumbing", "").Return("c1", nil)
	ts.categories.On("Create", mock.Anything, "Boilers", "nope").Return("", fmt.Errorf("parent: %w", core.ErrCategoryNotFound))

	w := ts.do(http.MethodPost, "/api/categories", `{"name":"Plumbing"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Category created successfully","categoryId":"c1"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/categories", `{"name":"Boilers","parentId":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPost, "/api/categories", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenameCategory_ReportsPropagation(t *testing.T) {
	ts := newTestServer()
	ts.categories.On("Rename", mock.Anything, "c1", "Plumbing & Heating").Return(3, nil)
	ts.categories.On("RenameSubcategory", mock.Anything, "c1", "s1", "Boilers").Return(1, nil)

	w := ts.do(http.MethodPut, "/api/categories/c1", `{"name":"Plumbing & Heating"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Category updated successfully","businessesUpdated":3}`, w.Body.String())

	w = ts.do(http.MethodPut, "/api/categories/c1/subcategories/s1", `{"name":"Boilers"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Subcategory updated successfully","businessesUpdated":1}`, w.Body.String())
}

func TestCategoryNameRequiredMessages(t *testing.T) {
	ts := newTestServer()

	cases := []struct {
		method, path, body, message string
	}{
		{http.MethodPost, "/api/categories", `{}`, "Category name is required"},
		{http.MethodPost, "/api/categories", `{"name":"  "}`, "Category name is required"},
		{http.MethodPut, "/api/categories/c1", `{"name":""}`, "Category name is required for update"},
		{http.MethodPut, "/api/categories/c1/subcategories/s1", `{"name":" "}`, "Subcategory name is required for update"},
	}
	for _, tc := range cases {
		w := ts.do(tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, tc.message, decodeError(t, w).Message, tc.path)
	}
	ts.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	ts.categories.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
	ts.categories.AssertNotCalled(t, "RenameSubcategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCategory(t *testing.T) {
	ts := newTestServer()
	ts.categories.On("Delete", mock.Anything, "c1").Return(nil)
	ts.categories.On("DeleteSubcategory", mock.Anything, "c1", "s1").Return(nil)

	w := ts.do(http.MethodDelete, "/api/categories/c1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Category and its subcategories deleted successfully")

	w = ts.do(http.MethodDelete, "/api/categories/c1/subcategories/s1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	ts.categories.AssertExpectations(t)
}

// --- Reviews ---

func TestSubmitReview(t *testing.T) {
	ts := newTestServer()
	ts.reviews.On("Submit", mock.Anything, mock.MatchedBy(func(req models.SubmitReviewRequest) bool {
		return req.UserID == "u1" && *req.Rating == 5
	})).Return(&models.Review{ID: "r1"}, nil).Once()
	ts.reviews.On("Submit", mock.Anything, mock.Anything).Return(nil, core.ErrAlreadyReviewed)

	body := `{"businessId":"b1","userId":"u1","userName":"Dana","rating":5,"comment":"Fast and tidy"}`
	w := ts.do(http.MethodPost, "/api/reviews", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Review submitted successfully","reviewId":"r1"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/reviews", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You have already reviewed this business.", decodeError(t, w).Message)
}

func TestSubmitReview_Validation(t *testing.T) {
	ts := newTestServer()

	for _, body := range []string{
		`{"businessId":"b1","userId":"u1","userName":"Dana","rating":6,"comment":"x"}`,
		`{"businessId":"b1","userId":"u1","userName":"Dana","comment":"x"}`,
		`{"businessId":"b1","userId":"u1","userName":"Dana","rating":3,"comment":"  "}`,
	} {
		w := ts.do(http.MethodPost, "/api/reviews", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Missing required review fields", decodeError(t, w).Message)
	}
	ts.reviews.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestListReviewsAndSummary(t *testing.T) {
	ts := newTestServer()
	ts.reviews.On("List", mock.Anything, "b1").Return(nil, nil)
	ts.reviews.On("Summary", mock.Anything, "b1").Return(&models.ReviewSummary{BusinessID: "b1", Count: 2, AverageRating: 4.5}, nil)

	w := ts.do(http.MethodGet, "/api/reviews/b1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = ts.do(http.MethodGet, "/api/reviews/b1/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"businessId":"b1","count":2,"averageRating":4.5}`, w.Body.String())
}

// --- Uploads ---

func TestUploadImage(t *testing.T) {
	ts := newTestServer()
	ts.uploads.On("UploadImage", mock.Anything, "logo.png", "image/png", mock.Anything).
		Return("https://storage.googleapis.com/bucket/images/id-logo.png", nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="logo.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://storage.googleapis.com/bucket/images/id-logo.png"}`, w.Body.String())
}

func TestUploadImage_NoFile(t *testing.T) {
	ts := newTestServer()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("caption", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No image file provided.", decodeError(t, w).Message)
}

// --- Israel open data ---

func TestStreets_RequiresCityCode(t *testing.T) {
	ts := newTestServer()
	ts.localities.On("Streets", mock.Anything, "").Return(nil, &core.ValidationError{Message: "City code is required."})

	w := ts.do(http.MethodGet, "/api/israel-data/streets", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "City code is required.", decodeError(t, w).Message)
}

func TestCities_PassThroughAndUpstreamFailure(t *testing.T) {
	ts := newTestServer()
	payload := json.RawMessage(`{"success":true,"result":{"records":[{"city":"Haifa"}]}}`)
	ts.localities.On("Cities", mock.Anything).Return(payload, nil).Once()
	ts.localities.On("Cities", mock.Anything).Return(nil, fmt.Errorf("cities: %w", core.ErrUpstream))

	w := ts.do(http.MethodGet, "/api/israel-data/cities", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(payload), w.Body.String())

	w = ts.do(http.MethodGet, "/api/israel-data/cities", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch cities data.", decodeError(t, w).Message)
}

func TestStreets_ValidTokenPassesThrough(t *testing.T) {
	ts := newTestServer()
	ts.localities.On("Streets", mock.Anything, "4000").Return(json.RawMessage(`{"result":{"records":[]}}`), nil)

	w := ts.do(http.MethodGet, "/api/israel-data/streets?cityCode=4000", "", "Authorization", "Bearer good")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"records":[]}}`, w.Body.String())
}
