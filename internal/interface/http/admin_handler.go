package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

// adminOnly rejects requests unless the signed-in user is an admin.
func adminOnly(store *storefront.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := store.CurrentUser()
		if !ok {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "sign in required", nil))
			return
		}
		if user.Role != storefront.RoleAdmin {
			abortWithError(c, NewHTTPError(http.StatusForbidden, "forbidden", "admin role required", nil))
			return
		}
		c.Next()
	}
}

// Dashboard returns fleet statistics.
func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportSvc.Dashboard(c.Request.Context()))
}

// Simulator returns the ethical counterfactual.
func (h *Handler) Simulator(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportSvc.Counterfactual(c.Request.Context()))
}

// ExportReport downloads the shipment audit log as CSV.
func (h *Handler) ExportReport(c *gin.Context) {
	export, err := h.reportSvc.ExportCSV(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err, "report_failed"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Content)
}
