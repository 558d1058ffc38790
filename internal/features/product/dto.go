package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductForm is the raw multipart form for a create or update. Fields are
// validated as submitted before being converted into a typed input.
type ProductForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Price       string `validate:"required"`
	CategoryID  string `validate:"required,uuid"`
	Quantity    string `validate:"required"`
}

// ProductInput is a validated, typed create/update payload.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	Quantity    int
	Photo       *Photo // nil when the form carried no photo
}
