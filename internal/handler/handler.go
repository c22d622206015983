// Package handler exposes the storefront over HTTP and maps domain errors to
// responses in one place.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/bookden/storefront/internal/domain/cart"
	"github.com/bookden/storefront/internal/domain/order"
	"github.com/bookden/storefront/internal/domain/product"
	"github.com/bookden/storefront/internal/middleware"
)

// Handler wires the domain services to gin routes.
type Handler struct {
	products product.Repository
	carts    *cart.Service
	orders   *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(products product.Repository, carts *cart.Service, orders *order.Service) *Handler {
	return &Handler{
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

// Register attaches all storefront routes to the engine. Cart and order
// routes require a session; admin routes additionally require the admin role.
func (h *Handler) Register(r *gin.Engine, jwtSecret []byte) {
	api := r.Group("/api")

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)

	authed := api.Group("", middleware.Authenticate(jwtSecret))
	authed.GET("/cart", h.GetCart)
	authed.POST("/cart/items", h.AddCartItem)
	authed.PATCH("/cart/items/:productId", h.UpdateCartItem)
	authed.DELETE("/cart/items/:productId", h.RemoveCartItem)
	authed.POST("/orders", h.PlaceOrder)
	authed.GET("/orders", h.ListMyOrders)
	authed.GET("/orders/:id", h.GetOrder)

	admin := authed.Group("/admin", middleware.RequireAdmin())
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/orders", h.ListOrders)
	admin.PATCH("/orders/:id/status", h.SetOrderStatus)
	admin.DELETE("/orders/:id", h.DeleteOrder)
}

// respondError converts a domain error into the single user-facing JSON
// error shape. Store failures are surfaced verbatim and logged; nothing here
// is fatal to the process.
func respondError(c *gin.Context, err error) {
	var (
		cartQtyErr    *cart.InvalidQuantityError
		orderFieldErr *order.MissingFieldError
		statusErr     *order.InvalidStatusError
		productFldErr *product.MissingFieldError
	)

	switch {
	case errors.Is(err, order.ErrEmptyCart),
		errors.As(err, &orderFieldErr),
		errors.As(err, &productFldErr),
		errors.Is(err, product.ErrInvalidPrice):
		writeError(c, http.StatusBadRequest, err.Error())

	case errors.As(err, &cartQtyErr),
		errors.As(err, &statusErr):
		writeError(c, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())

	default:
		zctx.From(c.Request.Context()).Error("Operation failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
