package order

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state. Every state is reachable from every
// other state; there is no transition graph.
type Status string

const (
	StatusNotProcessed Status = "Not Processed"
	StatusProcessing   Status = "Processing"
	StatusShipped      Status = "Shipped"
	StatusDelivered    Status = "Delivered"
	StatusCancelled    Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotProcessed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// LineItem is a product snapshot captured at checkout time. Later edits to
// the product never change a placed order.
type LineItem struct {
	ProductID uuid.UUID       `json:"productID"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Buyer is the read-time projection of the user who placed the order.
type Buyer struct {
	UserID uuid.UUID `json:"userID"`
	Name   string    `json:"name"`
}

type Order struct {
	OrderID  uuid.UUID  `json:"orderID"`
	BuyerID  uuid.UUID  `json:"-"`
	Buyer    *Buyer     `json:"buyer"`
	Products []LineItem `json:"products"`

	// Payment is the processor's result record, stored and echoed opaquely.
	Payment json.RawMessage `json:"payment"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
