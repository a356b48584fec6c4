package backend

import "errors"

// Sentinel kinds for user service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnavailable  = errors.New("user service unavailable")
	ErrBadResponse  = errors.New("unexpected user service response")
)
