package store

import "errors"

var (
	// ErrNotFound means the operation referenced an id absent from the
	// relevant collection. The store is left unchanged.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means a creation operation received an empty or
	// malformed payload. The store is left unchanged.
	ErrInvalidArgument = errors.New("invalid argument")
)
