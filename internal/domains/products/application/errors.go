package application

import (
	"errors"
	"fmt"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
)

// ErrInvalidInput signals the request violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyModel) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrFutureArrival) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
