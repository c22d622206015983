package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/bookden/storefront/internal/domain/auth"
	"github.com/bookden/storefront/internal/domain/cart"
	"github.com/bookden/storefront/internal/domain/product"
)

// Sentinel errors for checkout and order administration.
var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("order not found")
)

// MissingFieldError indicates a required shipping field was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidStatusError indicates a status outside the known set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// PlaceOrderRequest holds the shipping details entered at checkout.
type PlaceOrderRequest struct {
	Name    string
	Phone   string
	Address string
}

// Service turns resolved carts into orders and exposes the order lifecycle.
type Service struct {
	orders   Repository
	products product.Repository
	carts    *cart.Service
}

// NewService creates an order Service with the required domain dependencies.
func NewService(orders Repository, products product.Repository, carts *cart.Service) *Service {
	return &Service{
		orders:   orders,
		products: products,
		carts:    carts,
	}
}

// PlaceOrder converts the session user's cart into an immutable order.
//
// Validation failures happen before any write. The resolved view is the
// source of truth for lines and total: a product deleted mid-session is
// absent from both. The order insert and the cart delete commit as one
// transaction inside the repository.
//
// When the ordering session belongs to an administrator, each referenced
// product's stock is decremented in a second, all-or-nothing batch. Regular
// shoppers do not decrement stock. A decrement failure is reported to the
// caller but the committed order stands; no compensating rollback happens.
func (s *Service) PlaceOrder(ctx context.Context, sess auth.Session, req PlaceOrderRequest) (*Order, error) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, &MissingFieldError{Field: "name"}
	case strings.TrimSpace(req.Phone) == "":
		return nil, &MissingFieldError{Field: "phone"}
	case strings.TrimSpace(req.Address) == "":
		return nil, &MissingFieldError{Field: "address"}
	}

	view, err := s.carts.View(ctx, sess.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "resolve cart")
	}
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]Line, len(view.Lines))
	for i, rl := range view.Lines {
		lines[i] = Line{
			ProductID: rl.Product.ID,
			Name:      rl.Product.Name,
			Quantity:  rl.Quantity,
			Price:     rl.Product.Price,
		}
	}

	o := &Order{
		ID:      uuid.New().String(),
		UserID:  sess.UserID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Items:   lines,
		Total:   view.Total,
		Status:  StatusPending,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if sess.IsAdmin() {
		adjustments := make([]product.StockAdjustment, len(view.Lines))
		for i, rl := range view.Lines {
			adjustments[i] = product.StockAdjustment{
				ProductID: rl.Product.ID,
				Quantity:  rl.Quantity,
			}
		}
		if err := s.products.DecrementStock(ctx, adjustments); err != nil {
			return nil, errors.Wrap(err, "decrement stock")
		}
	}

	return o, nil
}

// List returns every order for administration. Orders stored without a
// status come back as pending.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	for i := range orders {
		if orders[i].Status == "" {
			orders[i].Status = StatusPending
		}
	}
	return orders, nil
}

// ListByUser returns the session user's own order history, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	for i := range orders {
		if orders[i].Status == "" {
			orders[i].Status = StatusPending
		}
	}
	return orders, nil
}

// GetForUser returns one order, refusing to reveal orders that belong to a
// different user.
func (s *Service) GetForUser(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

// SetStatus overwrites an order's status unconditionally after checking the
// value is one of the four known statuses.
func (s *Service) SetStatus(ctx context.Context, orderID string, status Status) error {
	if !status.Valid() {
		return &InvalidStatusError{Status: string(status)}
	}
	return s.orders.UpdateStatus(ctx, orderID, status)
}

// Delete removes an order. There are no cascading effects on historical
// data; line snapshots in other orders are untouched.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	return s.orders.Delete(ctx, orderID)
}
