package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing products, orders and unknown tokens.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest covers malformed input and rejected operations that
	// leave no side effects.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrLunchClosed rejects a lunch-item cart submitted past the deadline.
	ErrLunchClosed = fmt.Errorf("%w: lunch ordering time has passed", ErrInvalidRequest)

	// ErrInvalidTransition rejects a status update not allowed by the
	// transition table.
	ErrInvalidTransition = fmt.Errorf("%w: illegal status transition", ErrInvalidRequest)
)
