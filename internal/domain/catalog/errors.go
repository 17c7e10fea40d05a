package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameRequired    = errors.New("product name is required")
	ErrTextTooLong     = errors.New("product name or description is too long")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidStock    = errors.New("stock must not be negative")
)
