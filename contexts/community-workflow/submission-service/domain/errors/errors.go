package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrRecruitmentClosed  = errors.New("recruitment for this position is closed")
	// ErrThreadUnavailable is transient; callers skip and retry next tick.
	ErrThreadUnavailable = errors.New("thread unavailable")
)
