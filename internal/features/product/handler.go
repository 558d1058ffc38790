package product

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/craftandcart/storefront/internal/features/category"
	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxPhotoBytes caps uploaded photo payloads.
const maxPhotoBytes = 1_000_000

type servicer interface {
	createProduct(ctx context.Context, input *ProductInput) (*Product, error)
	updateProduct(ctx context.Context, productID uuid.UUID, input *ProductInput) (*Product, error)
	getAllProducts(ctx context.Context) ([]*Product, error)
	getProductPage(ctx context.Context, page int) ([]*Product, int, error)
	getProductBySlug(ctx context.Context, slug string) (*Product, error)
	getPhoto(ctx context.Context, productID uuid.UUID) (*Photo, error)
	countProducts(ctx context.Context) (int, error)
	searchProducts(ctx context.Context, keyword string) ([]*Product, error)
	relatedProducts(ctx context.Context, productID, categoryID uuid.UUID) ([]*Product, error)
	productsByCategory(ctx context.Context, slug string) (*category.Category, []*Product, error)
	deleteProduct(ctx context.Context, productID uuid.UUID) error
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

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/product",
		h.middleware.ErrorHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/product/count",
		h.middleware.ErrorHandler(
			h.countProductsHandler,
		),
	)

	router.Get(
		"/product/page/{page}",
		h.middleware.ErrorHandler(
			h.getProductPageHandler,
		),
	)

	router.Get(
		"/product/search/{keyword}",
		h.middleware.ErrorHandler(
			h.searchProductsHandler,
		),
	)

	router.Get(
		"/product/related/{productID}/{categoryID}",
		h.middleware.ErrorHandler(
			h.relatedProductsHandler,
		),
	)

	router.Get(
		"/product/category/{slug}",
		h.middleware.ErrorHandler(
			h.productsByCategoryHandler,
		),
	)

	router.Get(
		"/product/photo/{productID}",
		h.middleware.ErrorHandler(
			h.getPhotoHandler,
		),
	)

	router.Get(
		"/product/{slug}",
		h.middleware.ErrorHandler(
			h.getProductBySlugHandler,
		),
	)

	// protected routes
	router.Post(
		"/product",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.createProductHandler,
				),
			),
		),
	)

	router.Put(
		"/product/{productID}",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.updateProductHandler,
				),
			),
		),
	)

	router.Delete(
		"/product/{productID}",
		h.middleware.ErrorHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireAdmin(
					h.deleteProductHandler,
				),
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	input, err := parseProductForm(r)
	if err != nil {
		return err
	}

	product, err := h.service.createProduct(ctx, input)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"Product created successfully",
		map[string]any{"product": product},
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	input, err := parseProductForm(r)
	if err != nil {
		return err
	}

	product, err := h.service.updateProduct(ctx, productID, input)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product updated successfully",
		map[string]any{"product": product},
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.getAllProducts(r.Context())
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"All Products",
		map[string]any{
			"countTotal": len(products),
			"products":   products,
		},
	)
}

func (h *handler) getProductPageHandler(w http.ResponseWriter, r *http.Request) error {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		page = 1
	}

	products, total, err := h.service.getProductPage(r.Context(), page)
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{
			"total":       total,
			"perPage":     perPage,
			"currentPage": page,
			"products":    products,
		},
	)
}

func (h *handler) getProductBySlugHandler(w http.ResponseWriter, r *http.Request) error {
	product, err := h.service.getProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Single Product Fetched",
		map[string]any{"product": product},
	)
}

func (h *handler) getPhotoHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	photo, err := h.service.getPhoto(r.Context(), productID)
	if err != nil {
		if errors.Is(err, servererrors.ErrPhotoNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrPhotoNotFound.Error(),
				nil,
			)
		}

		return err
	}

	// raw bytes with the stored content type echoed verbatim
	w.Header().Set("Content-Type", photo.ContentType)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(photo.Data)
	return err
}

func (h *handler) countProductsHandler(w http.ResponseWriter, r *http.Request) error {
	total, err := h.service.countProducts(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{"total": total},
	)
}

// searchProductsHandler responds with a bare array instead of the standard
// envelope. The web client consumes it that way; do not wrap it.
func (h *handler) searchProductsHandler(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.searchProducts(r.Context(), chi.URLParam(r, "keyword"))
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteJSON(w, http.StatusOK, products)
}

func (h *handler) relatedProductsHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	products, err := h.service.relatedProducts(r.Context(), productID, categoryID)
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{"products": products},
	)
}

func (h *handler) productsByCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	cat, products, err := h.service.productsByCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"",
		map[string]any{
			"category": cat,
			"products": products,
		},
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLParams.Error(),
			nil,
		)
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product deleted successfully",
		nil,
	)
}

// parseProductForm validates the multipart create/update form and converts
// it into a typed input. Nothing is persisted when any field fails.
func parseProductForm(r *http.Request) (*ProductInput, error) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	form := &ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		CategoryID:  r.FormValue("category"),
		Quantity:    r.FormValue("quantity"),
	}

	if err := validate.StructFields(form); err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		return nil, servererrors.New(
			http.StatusBadRequest,
			"price must be a non-negative number",
			nil,
		)
	}

	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil || quantity < 0 {
		return nil, servererrors.New(
			http.StatusBadRequest,
			"quantity must be a non-negative integer",
			nil,
		)
	}

	categoryID, err := uuid.Parse(form.CategoryID)
	if err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			"category must be a valid id",
			nil,
		)
	}

	upload, err := handlerutils.ReadFormFile(r, "photo")
	if err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	var photo *Photo
	if upload != nil {
		if len(upload.Data) > maxPhotoBytes {
			return nil, servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrPhotoTooLarge.Error(),
				nil,
			)
		}
		photo = &Photo{
			Data:        upload.Data,
			ContentType: upload.ContentType,
		}
	}

	return &ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		CategoryID:  categoryID,
		Quantity:    quantity,
		Photo:       photo,
	}, nil
}
