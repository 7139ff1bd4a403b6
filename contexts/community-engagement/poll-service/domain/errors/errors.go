package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidOption    = errors.New("invalid poll option")
	ErrPollNotFound     = errors.New("poll not found")
	ErrPermissionDenied = errors.New("permission denied")
)
