package data

import (
	"encoding/json"
	"fmt"
)

// Decoder parses a raw persisted value into T.
type Decoder[T any] func(raw []byte) (T, error)

// JSON decodes raw as a JSON document of type T.
func JSON[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeOr is the parse-or-default primitive of the storage boundary.
//
// Absent or empty values yield fallback with a nil error. Values that fail to
// decode yield fallback with an error wrapping ErrCorruptValue; callers log it
// and carry on with fallback instead of failing the read.
func DecodeOr[T any](raw []byte, decode Decoder[T], fallback T) (T, error) {
	if len(raw) == 0 {
		return fallback, nil
	}
	v, err := decode(raw)
	if err != nil {
		return fallback, fmt.Errorf("%w: %w", ErrCorruptValue, err)
	}
	return v, nil
}

// EncodeJSON marshals v for storage.
func EncodeJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return b, nil
}
