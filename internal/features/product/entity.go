package product

import (
	"time"

	"github.com/craftandcart/storefront/internal/features/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   uuid.UUID       `json:"productID"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  uuid.UUID       `json:"-"`

	// Category is populated at read time by joining against the category
	// table; it is never denormalized onto the product row. A dangling
	// category reference reads back as nil.
	Category *category.Category `json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// Photo is the stored binary payload of a product image. It is excluded
// from every listing and only streamed by the photo endpoint.
type Photo struct {
	Data        []byte
	ContentType string
}
