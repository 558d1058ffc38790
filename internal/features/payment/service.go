package payment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/craftandcart/storefront/internal/features/order"
	"github.com/craftandcart/storefront/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type processor interface {
	GenerateClientToken(ctx context.Context) (string, error)
	SubmitSale(ctx context.Context, amount decimal.Decimal, nonce string) (json.RawMessage, error)
}

// orderLedger is the only way an order ever comes into existence: the
// payment service writes one on settlement success, and replays it by id
// on an idempotent retry.
type orderLedger interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error)
}

type intentStorer interface {
	insertPending(ctx context.Context, intent *checkoutIntent) (bool, error)
	findByNonce(ctx context.Context, nonce string) (*checkoutIntent, error)
	markSettled(ctx context.Context, nonce string, payment json.RawMessage) error
	markCompleted(ctx context.Context, nonce string, orderID uuid.UUID) error
	markFailed(ctx context.Context, nonce string) error
}

type idemCache interface {
	GetOrderID(ctx context.Context, nonce string) (uuid.UUID, bool)
	SetOrderID(ctx context.Context, nonce string, orderID uuid.UUID)
}

type service struct {
	gateway processor
	orders  orderLedger
	intents intentStorer
	cache   idemCache
}

func NewService(gateway processor, orders orderLedger, intents intentStorer, cache idemCache) *service {
	return &service{
		gateway: gateway,
		orders:  orders,
		intents: intents,
		cache:   cache,
	}
}

// getClientToken passes straight through to the processor. A token is
// never synthesized locally.
func (s *service) getClientToken(ctx context.Context) (string, error) {
	return s.gateway.GenerateClientToken(ctx)
}

// submitPayment settles the cart against the processor and, only on
// success, writes exactly one order. The nonce is single-use and doubles
// as the idempotency key: a retry after a timeout either replays the
// existing order or finishes an order write that crashed after settlement,
// never charging the buyer twice.
func (s *service) submitPayment(ctx context.Context, buyerID uuid.UUID, req *SubmitPaymentRequest) (*order.Order, error) {
	// fast path: this nonce already produced an order
	if orderID, ok := s.cache.GetOrderID(ctx, req.Nonce); ok {
		return s.orders.GetByID(ctx, orderID)
	}

	total := chargeTotal(req.Cart)

	intent := &checkoutIntent{
		Nonce:     req.Nonce,
		BuyerID:   buyerID,
		Cart:      req.Cart,
		Amount:    total,
		CreatedAt: time.Now().UTC(),
	}

	claimed, err := s.intents.insertPending(ctx, intent)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return s.resumeIntent(ctx, req.Nonce)
	}

	record, err := s.gateway.SubmitSale(ctx, total, req.Nonce)
	if err != nil {
		// includes processor timeouts: failure is never inferred as success
		if markErr := s.intents.markFailed(ctx, req.Nonce); markErr != nil {
			return nil, markErr
		}
		return nil, err
	}

	if err := s.intents.markSettled(ctx, req.Nonce, record); err != nil {
		return nil, err
	}

	return s.completeOrder(ctx, req.Nonce, buyerID, req.Cart, record)
}

// resumeIntent handles a checkout whose nonce was already claimed.
func (s *service) resumeIntent(ctx context.Context, nonce string) (*order.Order, error) {
	intent, err := s.intents.findByNonce(ctx, nonce)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		// claimed a moment ago but already gone; treat as in flight
		return nil, servererrors.ErrCheckoutInFlight
	}

	switch intent.State {
	case intentCompleted:
		ord, err := s.orders.GetByID(ctx, intent.OrderID)
		if err != nil {
			return nil, err
		}
		s.cache.SetOrderID(ctx, nonce, ord.OrderID)
		return ord, nil

	case intentSettled:
		// the charge settled but the order write never landed; finish it now
		return s.completeOrder(ctx, nonce, intent.BuyerID, intent.Cart, intent.Payment)

	case intentFailed:
		return nil, &GatewayError{Err: servererrors.ErrCheckoutFailed}

	default:
		return nil, servererrors.ErrCheckoutInFlight
	}
}

func (s *service) completeOrder(ctx context.Context, nonce string, buyerID uuid.UUID, cart []CartItem, record json.RawMessage) (*order.Order, error) {
	ord := &order.Order{
		OrderID:   uuid.New(),
		BuyerID:   buyerID,
		Products:  toLineItems(cart),
		Payment:   record,
		Status:    order.StatusNotProcessed,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, ord); err != nil {
		// the intent stays settled; a retry with the same nonce completes
		// the order from the stored processor result
		return nil, err
	}

	if err := s.intents.markCompleted(ctx, nonce, ord.OrderID); err != nil {
		return nil, err
	}

	s.cache.SetOrderID(ctx, nonce, ord.OrderID)

	return ord, nil
}

// chargeTotal sums the unit price of each line item. Quantity is not
// factored in; see the design notes before changing this.
func chargeTotal(cart []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart {
		total = total.Add(item.Price)
	}
	return total.Round(2)
}

func toLineItems(cart []CartItem) []order.LineItem {
	items := make([]order.LineItem, 0, len(cart))
	for _, item := range cart {
		items = append(items, order.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return items
}
