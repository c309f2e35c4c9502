package products

import (
	"errors"
)

const (
	msgRequiredFields  = "name, category, sku, and price are required"
	msgInvalidPrice    = "price must be a non-negative number"
	msgInvalidQuantity = "quantity must be a non-negative number"
	msgProductNotFound = "Product not found"
	msgDuplicateSKU    = "A product with this SKU already exists"
)

var (
	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned when a create or update would repeat another product's sku.
	ErrConflict = errors.New("sku already exists")
)

// ValidationError reports input that was rejected before reaching the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// outcome labels an operation result for the mutation counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsValidation(err):
		return "invalid"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
