package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/middlewares"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type servicer interface {
	listForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Order, error)
	listAll(ctx context.Context) ([]*Order, error)
	updateStatus(ctx context.Context, orderID uuid.UUID, status Status) error
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
	RequireAdmin(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/order/mine",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.listMineHandler,
			),
		),
	)

	router.Get(
		"/order/all",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.listAllHandler,
				),
			),
		),
	)

	router.Put(
		"/order/{orderID}/status",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.updateStatusHandler,
				),
			),
		),
	)
}

func (h *handler) listMineHandler(w http.ResponseWriter, r *http.Request) error {
	buyerID := middlewares.GetUserIDFromContext(r.Context())

	orders, err := h.service.listForBuyer(r.Context(), buyerID)
	if err != nil {
		return err
	}

	if orders == nil {
		orders = []*Order{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{"orders": orders},
	)
}

func (h *handler) listAllHandler(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.service.listAll(r.Context())
	if err != nil {
		return err
	}

	if orders == nil {
		orders = []*Order{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{"orders": orders},
	)
}

func (h *handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	var payload *UpdateStatusRequest
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

	err = h.service.updateStatus(ctx, orderID, Status(payload.Status))
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidStatus):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidStatus.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrOrderNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrOrderNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Order status updated",
		nil,
	)
}
