package sale

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when a sale request carries no line items.
// It is raised before any store access happens.
var ErrEmptyBatch = errors.New("no line items to record")

// ProductNotFoundError reports a line item referencing a product that does
// not exist. The whole batch is aborted.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// InsufficientStockError reports a line item requesting more units than
// are on hand. The whole batch is aborted.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductName)
}

// IsBusinessError reports whether the error is a validation or
// business-rule failure the caller can act on, as opposed to a store
// failure.
func IsBusinessError(err error) bool {
	var notFound *ProductNotFoundError
	var noStock *InsufficientStockError
	return errors.Is(err, ErrEmptyBatch) ||
		errors.As(err, &notFound) ||
		errors.As(err, &noStock)
}
