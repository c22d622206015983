package cart

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/bookden/storefront/internal/domain/product"
)

// InvalidQuantityError indicates an add with a quantity below one.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be at least 1 for product %s", e.ProductID)
}

// Service owns cart mutations and the resolved view.
type Service struct {
	carts    Repository
	products product.Repository
}

// NewService creates a cart Service with the required dependencies.
func NewService(carts Repository, products product.Repository) *Service {
	return &Service{
		carts:    carts,
		products: products,
	}
}

// AddItem appends a line to the user's cart, creating the cart if the user
// has none yet. It never merges with an existing line for the same product.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, &InvalidQuantityError{ProductID: productID}
	}

	c, err := s.carts.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		c = &Cart{UserID: userID}
	case err != nil:
		return nil, errors.Wrap(err, "load cart")
	}

	c.Items = append(c.Items, Line{ProductID: productID, Quantity: quantity})

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return c, nil
}

// UpdateQuantity rewrites every line referencing the product with the new
// quantity. A quantity below one is silently ignored and leaves the cart
// untouched.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return c, nil
	}

	changed := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			changed = true
		}
	}
	if !changed {
		return c, nil
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return c, nil
}

// RemoveItem drops every line referencing the product.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, line := range c.Items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Items = kept

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return c, nil
}

// View resolves the cart against the current catalog in a single batch fetch.
// Lines whose product has been deleted since they were added are dropped from
// the view and excluded from the total. A user without a cart gets an empty
// view, not an error.
func (s *Service) View(ctx context.Context, userID string) (*View, error) {
	c, err := s.carts.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &View{Total: decimal.Zero}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(c.Items) == 0 {
		return &View{Total: decimal.Zero}, nil
	}

	ids := make([]string, len(c.Items))
	for i, line := range c.Items {
		ids[i] = line.ProductID
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "resolve products")
	}

	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	view := &View{Total: decimal.Zero}
	for _, line := range c.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		view.Lines = append(view.Lines, ResolvedLine{Product: p, Quantity: line.Quantity})
		view.Total = view.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	view.Total = view.Total.Round(2)
	return view, nil
}
