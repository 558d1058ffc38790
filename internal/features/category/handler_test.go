package category

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/craftandcart/storefront/internal/auth"
	"github.com/craftandcart/storefront/internal/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens struct {
	userID uuid.UUID
}

func (s staticTokens) ValidateAccessToken(tokenStr string) (bool, *auth.TokenClaims, error) {
	if tokenStr != "admin-token" {
		return false, nil, nil
	}
	return true, &auth.TokenClaims{UserID: s.userID.String()}, nil
}

type everyoneAdmin struct{}

func (everyoneAdmin) IsAdmin(_ context.Context, _ uuid.UUID) (bool, error) {
	return true, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *fakeCategoryStore) {
	t.Helper()

	store := newFakeCategoryStore()
	mw := middlewares.NewMiddleware(staticTokens{userID: uuid.New()}, everyoneAdmin{}, zap.NewNop())

	router := chi.NewRouter()
	NewHandler(NewService(store), mw).RegisterRoutes(router)
	return router, store
}

func postCategory(router *chi.Mux, name string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/category", strings.NewReader(`{"name":"`+name+`"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCategoryHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postCategory(router, "Office Chairs")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Equal(t, "Category created successfully", body["message"])
	category := body["category"].(map[string]any)
	require.Equal(t, "office-chairs", category["slug"])
}

func TestCreateCategoryHandlerDuplicateAnswers200(t *testing.T) {
	router, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postCategory(router, "Office Chairs").Code)

	rec := postCategory(router, "Office Chairs")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "Category already exists", body["message"])
}

func TestCreateCategoryHandlerValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/category", strings.NewReader(`{"name":""}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Contains(t, body, "errors")
}

func TestCreateCategoryHandlerRequiresAuth(t *testing.T) {
	router, store := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/category", strings.NewReader(`{"name":"Lamps"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, store.categories)
}

func TestGetCategoryBySlugHandlerMissing(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/category/no-such-slug", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// a missing slug is a success envelope with a null category
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Nil(t, body["category"])
}

func TestDeleteCategoryHandlerNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/category/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCategoriesHandlerEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/category", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool        `json:"success"`
		Categories []*Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotNil(t, body.Categories)
	require.Empty(t, body.Categories)
}
