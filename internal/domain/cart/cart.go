package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/bookden/storefront/internal/domain/product"
)

// ErrNotFound is returned when a user has no cart document.
var ErrNotFound = errors.New("cart not found")

// Cart is the single mutable cart document owned by one user. It is created
// lazily on the first add and deleted wholesale when its contents become an
// order.
type Cart struct {
	UserID string
	Items  []Line
}

// Line is one (product reference, quantity) pair. The product is referenced
// by id only; resolution against the catalog happens in Service.View and may
// find the product gone.
//
// Adding the same product twice produces two lines. Readers must tolerate
// duplicate lines for the same product id.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Repository defines persistence for cart documents. Save writes the whole
// document back; concurrent writers are last-write-wins.
type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID string) error
}

// ResolvedLine joins a cart line with current product data.
type ResolvedLine struct {
	Product  product.Product
	Quantity int
}

// View is a cart resolved against the catalog: lines whose product no longer
// exists are absent, and Total covers only the lines present.
type View struct {
	Lines []ResolvedLine
	Total decimal.Decimal
}
