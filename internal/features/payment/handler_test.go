package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/craftandcart/storefront/internal/auth"
	"github.com/craftandcart/storefront/internal/features/order"
	"github.com/craftandcart/storefront/internal/middlewares"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens struct {
	userID uuid.UUID
}

func (s staticTokens) ValidateAccessToken(tokenStr string) (bool, *auth.TokenClaims, error) {
	if tokenStr != "buyer-token" {
		return false, nil, nil
	}
	return true, &auth.TokenClaims{UserID: s.userID.String()}, nil
}

type noAdmins struct{}

func (noAdmins) IsAdmin(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

type stubPaymentService struct {
	token     string
	tokenErr  error
	order     *order.Order
	submitErr error
	gotBuyer  uuid.UUID
	gotReq    *SubmitPaymentRequest
}

func (s *stubPaymentService) getClientToken(_ context.Context) (string, error) {
	return s.token, s.tokenErr
}

func (s *stubPaymentService) submitPayment(_ context.Context, buyerID uuid.UUID, req *SubmitPaymentRequest) (*order.Order, error) {
	s.gotBuyer = buyerID
	s.gotReq = req
	return s.order, s.submitErr
}

func newHandlerFixture(buyerID uuid.UUID, svc *stubPaymentService) *chi.Mux {
	mw := middlewares.NewMiddleware(staticTokens{userID: buyerID}, noAdmins{}, zap.NewNop())
	router := chi.NewRouter()
	NewHandler(svc, mw).RegisterRoutes(router)
	return router
}

func submitBody() string {
	return `{"nonce":"nonce-1","cart":[{"productID":"` + uuid.NewString() + `","name":"Oak Table","price":10,"quantity":2}]}`
}

func TestClientTokenHandler(t *testing.T) {
	router := newHandlerFixture(uuid.New(), &stubPaymentService{token: "client-token"})

	req := httptest.NewRequest(http.MethodGet, "/payment/token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Equal(t, "client-token", body["clientToken"])
}

func TestClientTokenHandlerGatewayDown(t *testing.T) {
	router := newHandlerFixture(uuid.New(), &stubPaymentService{
		tokenErr: &GatewayError{Err: errors.New("braintree unreachable")},
	})

	req := httptest.NewRequest(http.MethodGet, "/payment/token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSubmitPaymentHandler(t *testing.T) {
	buyerID := uuid.New()
	svc := &stubPaymentService{
		order: &order.Order{OrderID: uuid.New(), BuyerID: buyerID, Status: order.StatusNotProcessed},
	}
	router := newHandlerFixture(buyerID, svc)

	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(submitBody()))
	req.Header.Set("Authorization", "Bearer buyer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, buyerID, svc.gotBuyer)
	require.Equal(t, "nonce-1", svc.gotReq.Nonce)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Contains(t, body, "order")
}

func TestSubmitPaymentHandlerRequiresAuth(t *testing.T) {
	svc := &stubPaymentService{}
	router := newHandlerFixture(uuid.New(), svc)

	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(submitBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, svc.gotReq)
}

func TestSubmitPaymentHandlerInFlight(t *testing.T) {
	router := newHandlerFixture(uuid.New(), &stubPaymentService{
		submitErr: servererrors.ErrCheckoutInFlight,
	})

	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(submitBody()))
	req.Header.Set("Authorization", "Bearer buyer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitPaymentHandlerGatewayDecline(t *testing.T) {
	router := newHandlerFixture(uuid.New(), &stubPaymentService{
		submitErr: &GatewayError{Err: errors.New("Do Not Honor (2000)")},
	})

	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(submitBody()))
	req.Header.Set("Authorization", "Bearer buyer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	// the processor's decline reason is passed through unredacted
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["message"], "Do Not Honor (2000)")
}

func TestSubmitPaymentHandlerRejectsEmptyCart(t *testing.T) {
	svc := &stubPaymentService{}
	router := newHandlerFixture(uuid.New(), svc)

	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(`{"nonce":"nonce-1","cart":[]}`))
	req.Header.Set("Authorization", "Bearer buyer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Nil(t, svc.gotReq)
}
