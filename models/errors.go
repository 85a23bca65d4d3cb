package models

import "errors"

// Cart and catalog errors surfaced to the handlers, which translate them to
// HTTP responses. None of these are fatal.
var (
	// ErrInvalidKind means the product kind tag is not one of the enumerated
	// catalog kinds. It is returned before any database lookup happens.
	ErrInvalidKind = errors.New("invalid product kind")

	// ErrProductNotFound means the kind was valid but no product of that kind
	// has the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity means a mutating cart operation was given a quantity
	// below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
