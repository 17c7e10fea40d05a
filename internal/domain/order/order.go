package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	OrderDate time.Time       `json:"order_date"`
	Status    Status          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Version   int             `json:"version"`
	Items     []Item          `json:"items"`
}

// Item is one line of an order. Quantity and subtotal are frozen at creation;
// there are no item-level edits.
type Item struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewItem freezes a line at the product's current price.
func NewItem(productID int64, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	if !unitPrice.IsPositive() {
		return Item{}, ErrInvalidPrice
	}

	return Item{
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// NewOrder builds a pending order owning the given items. The total is the
// sum of the item subtotals and never recomputed afterwards.
func NewOrder(userID int64, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	return &Order{
		UserID:    userID,
		OrderDate: time.Now().UTC(),
		Status:    StatusPending,
		Total:     total,
		Version:   1,
		Items:     items,
	}, nil
}
