package order

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

type tokenTable struct {
	users map[string]uuid.UUID
}

func (tt tokenTable) ValidateAccessToken(tokenStr string) (bool, *auth.TokenClaims, error) {
	userID, ok := tt.users[tokenStr]
	if !ok {
		return false, nil, nil
	}
	return true, &auth.TokenClaims{UserID: userID.String()}, nil
}

type adminSet struct {
	admins map[uuid.UUID]bool
}

func (as adminSet) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	return as.admins[userID], nil
}

type orderFixture struct {
	router  *chi.Mux
	store   *fakeOrderStore
	svc     *service
	buyerID uuid.UUID
	adminID uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		store:   newFakeOrderStore(),
		buyerID: uuid.New(),
		adminID: uuid.New(),
	}
	f.svc = NewService(f.store)

	mw := middlewares.NewMiddleware(
		tokenTable{users: map[string]uuid.UUID{
			"buyer-token": f.buyerID,
			"admin-token": f.adminID,
		}},
		adminSet{admins: map[uuid.UUID]bool{f.adminID: true}},
		zap.NewNop(),
	)

	f.router = chi.NewRouter()
	NewHandler(f.svc, mw).RegisterRoutes(f.router)
	return f
}

func (f *orderFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestListMineHandler(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Create(ctx, testOrder(f.buyerID)))
	require.NoError(t, f.svc.Create(ctx, testOrder(uuid.New())))

	rec := f.do(http.MethodGet, "/order/mine", "buyer-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool     `json:"success"`
		Orders  []*Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Len(t, body.Orders, 1)

	require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/order/mine", "", "").Code)
}

func TestListAllHandlerIsAdminOnly(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Create(ctx, testOrder(f.buyerID)))
	require.NoError(t, f.svc.Create(ctx, testOrder(uuid.New())))

	rec := f.do(http.MethodGet, "/order/all", "admin-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orders []*Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Orders, 2)

	require.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/order/all", "buyer-token", "").Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	o := testOrder(f.buyerID)
	require.NoError(t, f.svc.Create(ctx, o))
	path := "/order/" + o.OrderID.String() + "/status"

	rec := f.do(http.MethodPut, path, "admin-token", `{"status":"Shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, StatusShipped, f.store.orders[o.OrderID].Status)

	// a non-admin caller is rejected and the order is untouched
	rec = f.do(http.MethodPut, path, "buyer-token", `{"status":"Cancelled"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, StatusShipped, f.store.orders[o.OrderID].Status)

	rec = f.do(http.MethodPut, path, "admin-token", `{"status":"Misplaced"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPut, "/order/"+uuid.NewString()+"/status", "admin-token", `{"status":"Shipped"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
