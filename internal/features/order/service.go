package order

import (
	"context"

	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, order *Order) error
	findByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	findByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Order, error)
	findAll(ctx context.Context) ([]*Order, error)
	updateStatus(ctx context.Context, orderID uuid.UUID, status Status) (found bool, err error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

// Create persists a settled order. It is called only by the payment
// service after a successful settlement; it is never exposed as a route.
func (s *service) Create(ctx context.Context, o *Order) error {
	if o.Status == "" {
		o.Status = StatusNotProcessed
	}
	return s.store.createOne(ctx, o)
}

// GetByID is used by the payment service to replay an already-created
// order on an idempotent checkout retry.
func (s *service) GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, servererrors.ErrOrderNotFound
	}

	return o, nil
}

func (s *service) listForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Order, error) {
	return s.store.findByBuyer(ctx, buyerID)
}

func (s *service) listAll(ctx context.Context) ([]*Order, error) {
	return s.store.findAll(ctx)
}

// updateStatus sets any of the five fixed states. Re-setting the current
// state succeeds with no substantive change.
func (s *service) updateStatus(ctx context.Context, orderID uuid.UUID, status Status) error {
	if !status.Valid() {
		return servererrors.ErrInvalidStatus
	}

	found, err := s.store.updateStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if !found {
		return servererrors.ErrOrderNotFound
	}

	return nil
}
