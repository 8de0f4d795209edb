package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

type priorityRequest struct {
	Signals     routing.Signals     `json:"signals"`
	HubID       string              `json:"hubId"`
	Origin      *routing.Coordinate `json:"origin"`
	Destination *routing.Coordinate `json:"destination" binding:"required"`
}

type advisorRequest struct {
	ProductID      string                  `json:"productId" binding:"required"`
	MedicalContext *advisor.MedicalContext `json:"medicalContext"`
}

// EvaluatePriority runs the engine on caller supplied signals.
func (h *Handler) EvaluatePriority(c *gin.Context) {
	var req priorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	origin := req.Origin
	if origin == nil {
		hubID := req.HubID
		if hubID == "" {
			hubID = catalog.DefaultHubID
		}
		hub, ok := catalog.FindHub(hubID)
		if !ok {
			abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "unknown hub "+hubID, nil))
			return
		}
		origin = &hub.Coords
	}
	c.JSON(http.StatusOK, h.engine.Decide(req.Signals, *origin, *req.Destination))
}

// EvaluateAdvisor asks the advisor about a catalog product.
func (h *Handler) EvaluateAdvisor(c *gin.Context) {
	var req advisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	product, ok := catalog.FindProduct(req.ProductID)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "unknown product "+req.ProductID, nil))
		return
	}
	c.JSON(http.StatusOK, h.advisorSvc.Evaluate(c.Request.Context(), product.AdvisorItem(req.MedicalContext)))
}
