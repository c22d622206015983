package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		ID:          "p1",
		Name:        "Widget",
		Price:       decimal.RequireFromString("10.00"),
		Description: "A widget",
		ImageURL:    "widget.jpg",
		Stock:       3,
	}
}

func TestValidate_OK(t *testing.T) {
	p := validProduct()
	require.NoError(t, p.Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
		field  string
	}{
		{"name", func(p *Product) { p.Name = "" }, "name"},
		{"whitespace name", func(p *Product) { p.Name = "   " }, "name"},
		{"description", func(p *Product) { p.Description = "" }, "description"},
		{"image url", func(p *Product) { p.ImageURL = "" }, "image URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			err := p.Validate()
			var mfErr *MissingFieldError
			require.ErrorAs(t, err, &mfErr)
			assert.Equal(t, tt.field, mfErr.Field)
		})
	}
}

func TestValidate_NonPositivePrice(t *testing.T) {
	p := validProduct()
	p.Price = decimal.Zero
	require.ErrorIs(t, p.Validate(), ErrInvalidPrice)

	p.Price = decimal.RequireFromString("-1")
	require.ErrorIs(t, p.Validate(), ErrInvalidPrice)
}
