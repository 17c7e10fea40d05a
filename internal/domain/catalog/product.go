package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SupplierRef string          `json:"supplier_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	Version     int             `json:"version"`
}

// NewProduct validates the business invariants: price > 0, stock >= 0,
// name required and bounded.
func NewProduct(name, description string, price decimal.Decimal, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > MaxNameLength || len(description) > MaxDescriptionLength {
		return nil, ErrTextTooLong
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   time.Now().UTC(),
		Version:     1,
	}, nil
}

// ListFilter narrows and orders a product listing.
type ListFilter struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortOrder
	InStock  bool
}

type SortOrder string

const (
	SortNameAsc   SortOrder = "name_asc"
	SortNameDesc  SortOrder = "name_desc"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)
