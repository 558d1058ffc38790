package category

import (
	"context"
	"strings"
	"time"

	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/craftandcart/storefront/internal/slugify"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, category *Category) error
	updateOne(ctx context.Context, category *Category) (found bool, err error)
	findAll(ctx context.Context) ([]*Category, error)
	findByName(ctx context.Context, name string) (*Category, error)
	findBySlug(ctx context.Context, slug string) (*Category, error)
	deleteOne(ctx context.Context, categoryID uuid.UUID) (found bool, err error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

// createCategory persists a new category with a derived slug. An exact
// name match is a conflict.
func (s *service) createCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	existing, err := s.store.findByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, servererrors.ErrCategoryExists
	}

	category := &Category{
		CategoryID: uuid.New(),
		Name:       name,
		Slug:       slugify.Make(name),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.createOne(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// updateCategory unconditionally overwrites the name and regenerates the
// slug. Name uniqueness is not re-checked on update.
func (s *service) updateCategory(ctx context.Context, categoryID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	category := &Category{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slugify.Make(name),
	}

	found, err := s.store.updateOne(ctx, category)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, servererrors.ErrCategoryNotFound
	}

	return category, nil
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}

// getCategoryBySlug returns (nil, nil) when no category matches; a missing
// slug is an empty result, not an error.
func (s *service) getCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.store.findBySlug(ctx, slug)
}

// GetBySlug is the cross-feature variant of getCategoryBySlug, used by the
// catalog service to resolve a category before listing its products.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.store.findBySlug(ctx, slug)
}

// deleteCategory is a hard delete. Products still referencing the category
// are left with a dangling reference on purpose.
func (s *service) deleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	found, err := s.store.deleteOne(ctx, categoryID)
	if err != nil {
		return err
	}
	if !found {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}
