package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidMode    = errors.New("invalid adjustment mode")
)
