package data

import "errors"

// Shared sentinel errors for the storage boundary.
var (
	// ErrCorruptValue marks a persisted value that could not be decoded.
	ErrCorruptValue = errors.New("corrupt persisted value")
	// ErrKeyRequired is returned by stores for empty keys.
	ErrKeyRequired = errors.New("key cannot be empty")
	// ErrClientIDRequired is returned when a browser context id is missing.
	ErrClientIDRequired = errors.New("client id is required")
)
