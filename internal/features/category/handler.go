package category

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type servicer interface {
	createCategory(ctx context.Context, name string) (*Category, error)
	updateCategory(ctx context.Context, categoryID uuid.UUID, name string) (*Category, error)
	getAllCategories(ctx context.Context) ([]*Category, error)
	getCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	deleteCategory(ctx context.Context, categoryID uuid.UUID) error
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

func NewHandler(categoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    categoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/category",
		h.middleware.ErrorHandler(
			h.getAllCategoriesHandler,
		),
	)

	router.Get(
		"/category/{slug}",
		h.middleware.ErrorHandler(
			h.getCategoryBySlugHandler,
		),
	)

	// protected routes
	router.Post(
		"/category",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.createCategoryHandler,
				),
			),
		),
	)

	router.Put(
		"/category/{categoryID}",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.updateCategoryHandler,
				),
			),
		),
	)

	router.Delete(
		"/category/{categoryID}",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.deleteCategoryHandler,
				),
			),
		),
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCategoryRequest
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

	category, err := h.service.createCategory(ctx, payload.Name)
	if err != nil {
		// a duplicate name answers success-false with a 200, not an HTTP
		// error status; existing clients depend on this shape
		if errors.Is(err, servererrors.ErrCategoryExists) {
			return handlerutils.WriteFailureJSON(
				w,
				servererrors.ErrCategoryExists.Error(),
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"Category created successfully",
		map[string]any{"category": category},
	)
}

func (h *handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	var payload *UpdateCategoryRequest
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

	category, err := h.service.updateCategory(ctx, categoryID, payload.Name)
	if err != nil {
		if errors.Is(err, servererrors.ErrCategoryNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Category Updated Successfully",
		map[string]any{"category": category},
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.getAllCategories(r.Context())
	if err != nil {
		return err
	}

	if categories == nil {
		categories = []*Category{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"All Categories List",
		map[string]any{"categories": categories},
	)
}

func (h *handler) getCategoryBySlugHandler(w http.ResponseWriter, r *http.Request) error {
	category, err := h.service.getCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return err
	}

	// a missing slug is an empty result, not an error
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Get Single Category Successfully",
		map[string]any{"category": category},
	)
}

func (h *handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	if err := h.service.deleteCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, servererrors.ErrCategoryNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Category Deleted Successfully",
		nil,
	)
}
