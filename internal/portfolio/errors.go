package portfolio

import "errors"

var (
	// ErrInsufficientQuantity is returned when a sell asks for more units
	// than the holding carries. No transaction is recorded in that case.
	ErrInsufficientQuantity = errors.New("insufficient quantity to sell")

	// ErrInvalidTrade is returned for a non-positive quantity or a
	// negative price.
	ErrInvalidTrade = errors.New("invalid trade parameters")
)
