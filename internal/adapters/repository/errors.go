package repository

import "errors"

// Sentinel kinds for batch store errors.
var (
	ErrBatchNotFound  = errors.New("event batch not found")
	ErrMissingColumn  = errors.New("required column missing from batch")
	ErrMalformedBatch = errors.New("malformed event batch")
)
