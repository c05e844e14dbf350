package application

import (
	"errors"
	"fmt"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid cart input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCustomer) ||
		errors.Is(err, domain.ErrEmptyModel) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
