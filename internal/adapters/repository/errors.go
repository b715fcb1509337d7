package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrStoreRead      = errors.New("record store read failed")
	ErrStoreWrite     = errors.New("record store write failed")
	ErrMalformedSheet = errors.New("malformed sheet")
	ErrUnknownBackend = errors.New("unknown store backend")
)
