package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Carts and orders
// reference products by id only; they never own the product record.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	Stock       int
}

// StockAdjustment describes one product's stock decrement within a batch.
type StockAdjustment struct {
	ProductID string
	Quantity  int
}

// Repository defines persistence operations for the product catalog.
//
// DecrementStock applies every adjustment or none of them: a failure on any
// product (including a missing one) must leave all stock values untouched.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, adjustments []StockAdjustment) error
}
