package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one client-held cart line as submitted at checkout. The
// server never stores cart state between requests; this is the only point
// where a cart crosses the wire.
type CartItem struct {
	ProductID uuid.UUID       `json:"productID" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
}

type SubmitPaymentRequest struct {
	Nonce string     `json:"nonce" validate:"required"`
	Cart  []CartItem `json:"cart" validate:"required,min=1,dive"`
}
