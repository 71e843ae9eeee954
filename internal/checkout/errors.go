package checkout

import (
	"errors"
	"fmt"
)

// ErrInvalidOrder marks bad caller input: empty item list, blank customer
// name or a quantity below 1. Not retryable.
var ErrInvalidOrder = errors.New("invalid order")

// ErrOrderNumberExhausted is returned when no free order number was found
// within the configured attempt bound. The whole submission is safe to retry.
var ErrOrderNumberExhausted = errors.New("order number space exhausted")

// ProductUnavailableError reports a requested product that is missing or
// inactive. The whole submission fails, no partial order is created.
type ProductUnavailableError struct {
	ProductID uint
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d unavailable", e.ProductID)
}

// PersistenceError wraps a failed atomic commit of the order and its items.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
