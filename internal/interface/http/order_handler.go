package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

type statusRequest struct {
	Status storefront.ShipmentStatus `json:"status" binding:"required"`
}

// Checkout converts the cart into an order.
func (h *Handler) Checkout(c *gin.Context) {
	order, err := h.checkoutSvc.Checkout(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err, "checkout_failed"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// Orders lists order history.
func (h *Handler) Orders(c *gin.Context) {
	orders := h.store.Orders()
	if orders == nil {
		orders = []storefront.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Shipments lists every shipment.
func (h *Handler) Shipments(c *gin.Context) {
	shipments := h.store.Shipments()
	if shipments == nil {
		shipments = []storefront.Shipment{}
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

// UpdateShipmentStatus moves a shipment through fulfilment.
func (h *Handler) UpdateShipmentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	shipment, err := h.store.UpdateShipmentStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		abortWithError(c, domainError(err, "shipment_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}
