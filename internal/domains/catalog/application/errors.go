package application

import (
	"errors"
	"fmt"

	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")

	// ErrInvalidQuantity signals a non-positive restock quantity.
	ErrInvalidQuantity = errors.New("restock quantity must be greater than zero")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyDescription) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
