package cart

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookden/storefront/internal/domain/product"
)

// --- Mock implementations ---

type mockCartRepo struct {
	byUser  map[string]*Cart
	getErr  error
	saveErr error
	saves   int
}

func (m *mockCartRepo) Get(_ context.Context, userID string) (*Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	cp.Items = append([]Line(nil), c.Items...)
	return &cp, nil
}

func (m *mockCartRepo) Save(_ context.Context, c *Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.byUser[c.UserID] = c
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, userID string) error {
	delete(m.byUser, userID)
	return nil
}

type mockProductRepo struct {
	byID map[string]product.Product
	err  error
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) { return nil, nil }

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []product.Product
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Create(_ context.Context, _ *product.Product) error { return nil }
func (m *mockProductRepo) Update(_ context.Context, _ *product.Product) error { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ string) error           { return nil }

func (m *mockProductRepo) DecrementStock(_ context.Context, _ []product.StockAdjustment) error {
	return nil
}

// --- Helpers ---

func newCartRepo(carts ...*Cart) *mockCartRepo {
	byUser := make(map[string]*Cart, len(carts))
	for _, c := range carts {
		byUser[c.UserID] = c
	}
	return &mockCartRepo{byUser: byUser}
}

func newProductRepo(products ...product.Product) *mockProductRepo {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepo{byID: byID}
}

func newTestProduct(id, name, price string) product.Product {
	return product.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: "test product",
		ImageURL:    "image.jpg",
		Stock:       10,
	}
}

// --- Tests ---

func TestAddItem_CreatesCartOnFirstAdd(t *testing.T) {
	carts := newCartRepo()
	svc := NewService(carts, newProductRepo())

	c, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	assert.Equal(t, "u1", c.UserID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, Line{ProductID: "p1", Quantity: 2}, c.Items[0])
	assert.Equal(t, 1, carts.saves)
}

func TestAddItem_AppendsDuplicateLines(t *testing.T) {
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{{ProductID: "p1", Quantity: 1}}})
	svc := NewService(carts, newProductRepo())

	c, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	require.NoError(t, err)

	// Lines are never merged; both survive.
	require.Len(t, c.Items, 2)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 3, c.Items[1].Quantity)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	carts := newCartRepo()
	svc := NewService(carts, newProductRepo())

	_, err := svc.AddItem(context.Background(), "u1", "p1", 0)

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "p1", iqErr.ProductID)
	assert.Zero(t, carts.saves)
}

func TestUpdateQuantity_RewritesEveryMatchingLine(t *testing.T) {
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p1", Quantity: 4},
	}})
	svc := NewService(carts, newProductRepo())

	c, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 7)
	require.NoError(t, err)

	require.Len(t, c.Items, 3)
	assert.Equal(t, 7, c.Items[0].Quantity)
	assert.Equal(t, 2, c.Items[1].Quantity)
	assert.Equal(t, 7, c.Items[2].Quantity)
}

func TestUpdateQuantity_BelowOneIsNoOp(t *testing.T) {
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{{ProductID: "p1", Quantity: 5}}})
	svc := NewService(carts, newProductRepo())

	c, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Zero(t, carts.saves)
}

func TestUpdateQuantity_CartNotFound(t *testing.T) {
	svc := NewService(newCartRepo(), newProductRepo())

	_, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItem_DropsEveryMatchingLine(t *testing.T) {
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p1", Quantity: 3},
	}})
	svc := NewService(carts, newProductRepo())

	c, err := svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
}

func TestView_NoCartIsEmptyView(t *testing.T) {
	svc := NewService(newCartRepo(), newProductRepo())

	view, err := svc.View(context.Background(), "u1")
	require.NoError(t, err)

	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
}

func TestView_ComputesTotal(t *testing.T) {
	p1 := newTestProduct("p1", "Widget", "10.00")
	p2 := newTestProduct("p2", "Gadget", "2.50")
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 2},
	}})
	svc := NewService(carts, newProductRepo(p1, p2))

	view, err := svc.View(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("25.00")), "total = %s", view.Total)
}

func TestView_DropsDanglingReferences(t *testing.T) {
	p1 := newTestProduct("p1", "Widget", "10.00")
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "deleted", Quantity: 5},
	}})
	svc := NewService(carts, newProductRepo(p1))

	view, err := svc.View(context.Background(), "u1")
	require.NoError(t, err)

	// The dangling line is dropped from both the lines and the total.
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "p1", view.Lines[0].Product.ID)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("10.00")), "total = %s", view.Total)
}

func TestView_DuplicateLinesEachContribute(t *testing.T) {
	p1 := newTestProduct("p1", "Widget", "3.00")
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p1", Quantity: 2},
	}})
	svc := NewService(carts, newProductRepo(p1))

	view, err := svc.View(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("9.00")), "total = %s", view.Total)
}

func TestView_ProductFetchError(t *testing.T) {
	carts := newCartRepo(&Cart{UserID: "u1", Items: []Line{{ProductID: "p1", Quantity: 1}}})
	products := newProductRepo()
	products.err = errors.New("db down")
	svc := NewService(carts, products)

	_, err := svc.View(context.Background(), "u1")
	require.Error(t, err)
}
