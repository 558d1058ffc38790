package product

import (
	"context"
	"strings"
	"time"

	"github.com/craftandcart/storefront/internal/features/category"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/slugify"
	"github.com/google/uuid"
)

// perPage is the fixed page size of the paginated listing. The first-page
// endpoint uses the larger featuredLimit instead.
const (
	perPage       = 4
	featuredLimit = 12
	relatedLimit  = 3
)

type Storer interface {
	createOne(ctx context.Context, product *Product, photo *Photo) error
	updateOne(ctx context.Context, product *Product, photo *Photo) (found bool, err error)
	findRecent(ctx context.Context, limit int) ([]*Product, error)
	findPage(ctx context.Context, offset, limit int) ([]*Product, error)
	findBySlug(ctx context.Context, slug string) (*Product, error)
	findPhoto(ctx context.Context, productID uuid.UUID) (*Photo, error)
	countAll(ctx context.Context) (int, error)
	search(ctx context.Context, keyword string) ([]*Product, error)
	findRelated(ctx context.Context, productID, categoryID uuid.UUID, limit int) ([]*Product, error)
	findByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*Product, error)
	deleteOne(ctx context.Context, productID uuid.UUID) (found bool, err error)
}

type categoryResolver interface {
	GetBySlug(ctx context.Context, slug string) (*category.Category, error)
}

type service struct {
	store      Storer
	categories categoryResolver
}

func NewService(store Storer, categories categoryResolver) *service {
	return &service{
		store:      store,
		categories: categories,
	}
}

func (s *service) createProduct(ctx context.Context, input *ProductInput) (*Product, error) {
	product := &Product{
		ProductID:   uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Quantity:    input.Quantity,
		CategoryID:  input.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
	product.Slug = slugify.Make(product.Name)

	if err := s.store.createOne(ctx, product, input.Photo); err != nil {
		return nil, err
	}

	return product, nil
}

// updateProduct overwrites every field and regenerates the slug from the
// new name unconditionally. Slug uniqueness is not re-checked. The stored
// photo is replaced only when the form carried one.
func (s *service) updateProduct(ctx context.Context, productID uuid.UUID, input *ProductInput) (*Product, error) {
	product := &Product{
		ProductID:   productID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Quantity:    input.Quantity,
		CategoryID:  input.CategoryID,
	}
	product.Slug = slugify.Make(product.Name)

	found, err := s.store.updateOne(ctx, product, input.Photo)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, servererrors.ErrProductNotFound
	}

	return product, nil
}

// getAllProducts is the first-page listing: the most recently created
// products, photo excluded, category populated.
func (s *service) getAllProducts(ctx context.Context) ([]*Product, error) {
	return s.store.findRecent(ctx, featuredLimit)
}

// getProductPage returns the fixed-size page numbered from 1, newest
// first, plus the total count the client uses to know when more pages
// exist.
func (s *service) getProductPage(ctx context.Context, page int) ([]*Product, int, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.store.countAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	products, err := s.store.findPage(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *service) getProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.store.findBySlug(ctx, slug)
}

func (s *service) getPhoto(ctx context.Context, productID uuid.UUID) (*Photo, error) {
	photo, err := s.store.findPhoto(ctx, productID)
	if err != nil {
		return nil, err
	}
	if photo == nil || len(photo.Data) == 0 {
		return nil, servererrors.ErrPhotoNotFound
	}

	return photo, nil
}

func (s *service) countProducts(ctx context.Context) (int, error) {
	return s.store.countAll(ctx)
}

// searchProducts matches the keyword case-insensitively as a substring of
// the name or the description and returns the full matching set.
func (s *service) searchProducts(ctx context.Context, keyword string) ([]*Product, error) {
	return s.store.search(ctx, strings.TrimSpace(keyword))
}

// relatedProducts returns up to three other products in the same category.
func (s *service) relatedProducts(ctx context.Context, productID, categoryID uuid.UUID) ([]*Product, error) {
	return s.store.findRelated(ctx, productID, categoryID, relatedLimit)
}

// productsByCategory resolves the slug to a category first and then lists
// that category's products. An unresolvable slug yields a nil category and
// an empty product set, not an error.
func (s *service) productsByCategory(ctx context.Context, slug string) (*category.Category, []*Product, error) {
	cat, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if cat == nil {
		return nil, []*Product{}, nil
	}

	products, err := s.store.findByCategoryID(ctx, cat.CategoryID)
	if err != nil {
		return nil, nil, err
	}

	return cat, products, nil
}

func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID) error {
	found, err := s.store.deleteOne(ctx, productID)
	if err != nil {
		return err
	}
	if !found {
		return servererrors.ErrProductNotFound
	}

	return nil
}
