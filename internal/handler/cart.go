package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookden/storefront/internal/domain/auth"
	"github.com/bookden/storefront/internal/domain/cart"
)

type cartLineResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

type cartViewResponse struct {
	Items []cartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

func toCartViewResponse(v *cart.View) cartViewResponse {
	resp := cartViewResponse{
		Items: make([]cartLineResponse, len(v.Lines)),
		Total: v.Total.InexactFloat64(),
	}
	for i, line := range v.Lines {
		resp.Items[i] = cartLineResponse{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price.InexactFloat64(),
			ImageURL:  line.Product.ImageURL,
			Quantity:  line.Quantity,
		}
	}
	return resp
}

// GetCart returns the session user's cart resolved against the catalog.
func (h *Handler) GetCart(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	view, err := h.carts.View(c.Request.Context(), sess.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartViewResponse(view))
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem appends a line to the session user's cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.carts.AddItem(c.Request.Context(), sess.UserID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.carts.View(c.Request.Context(), sess.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartViewResponse(view))
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem rewrites the quantity of every line for the given product.
// Quantities below one are ignored, matching the storefront's form behavior.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.carts.UpdateQuantity(c.Request.Context(), sess.UserID, c.Param("productId"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.carts.View(c.Request.Context(), sess.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartViewResponse(view))
}

// RemoveCartItem drops every line for the given product from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())

	if _, err := h.carts.RemoveItem(c.Request.Context(), sess.UserID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.carts.View(c.Request.Context(), sess.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartViewResponse(view))
}
