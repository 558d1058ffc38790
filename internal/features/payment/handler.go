package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/craftandcart/storefront/internal/features/order"
	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/middlewares"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type servicer interface {
	getClientToken(ctx context.Context) (string, error)
	submitPayment(ctx context.Context, buyerID uuid.UUID, req *SubmitPaymentRequest) (*order.Order, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(paymentService servicer, middleware middleware) *handler {
	return &handler{
		service:    paymentService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/payment/token",
		h.middleware.ErrorHandler(
			h.clientTokenHandler,
		),
	)

	router.Post(
		"/payment",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.submitPaymentHandler,
			),
		),
	)
}

func (h *handler) clientTokenHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	token, err := h.service.getClientToken(ctx)
	if err != nil {
		var gatewayErr *GatewayError
		if errors.As(err, &gatewayErr) {
			return servererrors.New(
				http.StatusBadGateway,
				gatewayErr.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{"clientToken": token},
	)
}

func (h *handler) submitPaymentHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	buyerID := middlewares.GetUserIDFromContext(ctx)

	var payload *SubmitPaymentRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	ord, err := h.service.submitPayment(ctx, buyerID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCheckoutInFlight):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrCheckoutInFlight.Error(),
				nil,
			)

		default:
			var gatewayErr *GatewayError
			if errors.As(err, &gatewayErr) {
				// the processor's message goes out as-is
				return servererrors.New(
					http.StatusPaymentRequired,
					gatewayErr.Error(),
					nil,
				)
			}

			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{"order": ord},
	)
}
