package store

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrServiceUnavailable = errors.New("notebook service unavailable")
	ErrInvalidConfig      = errors.New("invalid configuration")
)
