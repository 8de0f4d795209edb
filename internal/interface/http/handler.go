package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/checkout"
	"github.com/yanqian/ethix-logistics/internal/domain/report"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	store       *storefront.Container
	checkoutSvc checkout.Service
	reportSvc   report.Service
	advisorSvc  advisor.Service
	engine      *routing.Engine
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	store *storefront.Container,
	checkoutSvc checkout.Service,
	reportSvc report.Service,
	advisorSvc advisor.Service,
	engine *routing.Engine,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:       store,
		checkoutSvc: checkoutSvc,
		reportSvc:   reportSvc,
		advisorSvc:  advisorSvc,
		engine:      engine,
		logger:      logger.With("component", "http.handler"),
	}
}

type loginRequest struct {
	Email string          `json:"email" binding:"required"`
	Role  storefront.Role `json:"role"`
}

// Login starts a session. There is no credential check.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if req.Role == "" {
		req.Role = storefront.RoleCustomer
	}
	user, err := h.store.Login(c.Request.Context(), req.Email, storefront.Role(strings.ToUpper(string(req.Role))))
	if err != nil {
		abortWithError(c, domainError(err, "login_failed"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Session returns the signed-in user, or null.
func (h *Handler) Session(c *gin.Context) {
	user, ok := h.store.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout ends the session and wipes cart and history.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		abortWithError(c, domainError(err, "logout_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Products lists the catalog.
func (h *Handler) Products(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": catalog.Products()})
}

// Hubs lists dispatch hubs.
func (h *Handler) Hubs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hubs": catalog.Hubs()})
}
