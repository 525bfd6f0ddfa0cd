package application

import (
	"errors"
	"fmt"

	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
)

var (
	// ErrInvalidRequest rejects empty or malformed order requests before any
	// storage access: no lines, a non-positive quantity, or a duplicate
	// product id within one request.
	ErrInvalidRequest = errors.New("invalid order request")

	// ErrProductNotFound rejects requests referencing an unknown product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock rejects requests the catalog cannot satisfy. Any
	// partially applied debits have been compensated.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistenceFailure reports that stock was debited but the order
	// record could not be written; the debits have been compensated.
	ErrPersistenceFailure = errors.New("order persistence failed")

	// ErrCompensationFailure reports that rolling back partial debits itself
	// failed. The catalog may be inconsistent and needs operator attention.
	ErrCompensationFailure = errors.New("stock compensation failed")
)

func mapRequestError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyRequest) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrDuplicateProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return err
}
