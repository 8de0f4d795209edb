package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// Cart returns the current cart lines.
func (h *Handler) Cart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(h.store.Cart()))
}

// AddCartItem adds one unit of a catalog product.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	product, ok := catalog.FindProduct(req.ProductID)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "unknown product "+req.ProductID, nil))
		return
	}
	cart, err := h.store.AddToCart(c.Request.Context(), product)
	if err != nil {
		abortWithError(c, domainError(err, "cart_failed"))
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// UpdateCartItem changes quantity and/or medical context of a line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req storefront.CartUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	item, err := h.store.UpdateCartItem(c.Request.Context(), c.Param("productId"), req)
	if err != nil {
		abortWithError(c, domainError(err, "cart_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveCartItem drops a line.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	cart, err := h.store.RemoveFromCart(c.Request.Context(), c.Param("productId"))
	if err != nil {
		abortWithError(c, domainError(err, "cart_failed"))
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.store.ClearCart(c.Request.Context()); err != nil {
		abortWithError(c, domainError(err, "cart_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

func cartResponse(items []storefront.CartItem) gin.H {
	if items == nil {
		items = []storefront.CartItem{}
	}
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return gin.H{"items": items, "total": total}
}
