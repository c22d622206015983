package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order. There is no enforced transition
// graph: an administrator may move an order from any status to any other.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is the immutable record produced by checkout. Only Status ever
// changes after creation; everything else is frozen, including the per-line
// product snapshots.
type Order struct {
	ID        string
	UserID    string
	Name      string
	Phone     string
	Address   string
	Items     []Line
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// Line snapshots one cart line at order time. Later edits or deletion of the
// product do not touch it.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Repository defines persistence operations for orders.
//
// Create persists the order and deletes the owning user's cart in a single
// transaction, so checkout either fully succeeds or leaves no partial order.
// It fills in CreatedAt with the store-assigned commit timestamp.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
