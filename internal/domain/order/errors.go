package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidPrice      = errors.New("unit price must be greater than zero")
	ErrInsufficientStock = errors.New("not enough stock for the requested quantity")
	ErrNoValidItems      = errors.New("no order line passed validation")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)
