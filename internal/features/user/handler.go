package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/validate"
	"github.com/go-chi/chi/v5"
)

type servicer interface {
	registerUser(ctx context.Context, req *RegisterRequest) (*User, error)
	loginUser(ctx context.Context, email, password string) (*User, string, error)
	forgotPassword(ctx context.Context, req *ForgotPasswordRequest) error
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(userService servicer, middleware middleware) *handler {
	return &handler{
		service:    userService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/register",
		h.middleware.ErrorHandler(
			h.registerHandler,
		),
	)

	router.Post(
		"/auth/login",
		h.middleware.ErrorHandler(
			h.loginHandler,
		),
	)

	router.Post(
		"/auth/forgot-password",
		h.middleware.ErrorHandler(
			h.forgotPasswordHandler,
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *RegisterRequest
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

	newUser, err := h.service.registerUser(ctx, payload)
	if err != nil {
		// same success-false-with-200 shape the duplicate-category path uses
		if errors.Is(err, servererrors.ErrEmailTaken) {
			return handlerutils.WriteFailureJSON(
				w,
				servererrors.ErrEmailTaken.Error(),
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"User registered successfully",
		map[string]any{"user": newUser},
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *LoginRequest
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

	u, token, err := h.service.loginUser(ctx, payload.Email, payload.Password)
	if err != nil {
		// an unknown email and a wrong password are indistinguishable
		if errors.Is(err, servererrors.ErrInvalidCredentials) {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Login successful",
		map[string]any{
			"user":  u,
			"token": token,
		},
	)
}

func (h *handler) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *ForgotPasswordRequest
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

	if err := h.service.forgotPassword(ctx, payload); err != nil {
		if errors.Is(err, servererrors.ErrWrongAnswer) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrWrongAnswer.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Password reset successfully",
		nil,
	)
}
