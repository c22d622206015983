package product

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// MissingFieldError indicates a required product field was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("product %s is required", e.Field)
}

// ErrInvalidPrice is returned when a product price is not a positive number.
var ErrInvalidPrice = errors.New("price must be a positive number")

// Validate checks the fields an administrator must supply when creating or
// editing a product.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return &MissingFieldError{Field: "name"}
	case strings.TrimSpace(p.Description) == "":
		return &MissingFieldError{Field: "description"}
	case strings.TrimSpace(p.ImageURL) == "":
		return &MissingFieldError{Field: "image URL"}
	case !p.Price.IsPositive():
		return ErrInvalidPrice
	}
	return nil
}
