package errors

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidCategory   = errors.New("invalid item category")
	ErrItemNotFound      = errors.New("item not found")
	ErrSoldOut           = errors.New("item sold out")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient reputation balance")
)
