package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookden/storefront/internal/domain/order"
	"github.com/bookden/storefront/internal/domain/product"
)

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}

// CreateProduct adds a catalog item.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p := &product.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Price:       decimal.NewFromFloat(req.Price),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.products.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*p))
}

// UpdateProduct overwrites a catalog item's fields. Cart lines and order
// snapshots referencing the product are unaffected.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p := &product.Product{
		ID:          c.Param("id"),
		Name:        req.Name,
		Price:       decimal.NewFromFloat(req.Price),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.products.Update(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

// DeleteProduct removes a catalog item. Carts still referencing it lose the
// line at resolution time; existing order snapshots keep their copy.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// ListOrders returns every order for administration.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatus overwrites an order's status.
func (h *Handler) SetOrderStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orders.SetStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

// DeleteOrder removes an order outright.
func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}
