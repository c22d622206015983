package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookden/storefront/internal/domain/auth"
	"github.com/bookden/storefront/internal/domain/order"
)

type orderLineResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Name      string              `json:"name"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	Items     []orderLineResponse `json:"items"`
	Total     float64             `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

func toOrderResponse(o order.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Name:      o.Name,
		Phone:     o.Phone,
		Address:   o.Address,
		Items:     make([]orderLineResponse, len(o.Items)),
		Total:     o.Total.InexactFloat64(),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
	for i, line := range o.Items {
		resp.Items[i] = orderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price.InexactFloat64(),
		}
	}
	return resp
}

type placeOrderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PlaceOrder converts the session user's cart into an order using the
// submitted shipping details.
func (h *Handler) PlaceOrder(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.PlaceOrder(c.Request.Context(), sess, order.PlaceOrderRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*o))
}

// ListMyOrders returns the session user's order history.
func (h *Handler) ListMyOrders(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	orders, err := h.orders.ListByUser(c.Request.Context(), sess.UserID)
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

// GetOrder returns one of the session user's orders by id.
func (h *Handler) GetOrder(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	o, err := h.orders.GetForUser(c.Request.Context(), sess.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}
