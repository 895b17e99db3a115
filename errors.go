package json0diff

import "errors"

var (
	// ErrInvalidValue is returned for Go values outside the JSON value set.
	ErrInvalidValue = errors.New("invalid value")
	// ErrTooDeep is returned when a value nests deeper than the configured
	// maximum. Cyclic values always end up here.
	ErrTooDeep = errors.New("value nested too deeply")

	ErrInvalidOperation = errors.New("invalid operation")
	ErrPathNotFound     = errors.New("path not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrTextMismatch     = errors.New("deleted text does not match document")
	ErrValueMismatch    = errors.New("deleted value does not match document")
)
