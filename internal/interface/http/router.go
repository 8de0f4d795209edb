package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ethix-logistics/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	api := router.Group("/api/v1")
	{
		api.POST("/session", handler.Login)
		api.GET("/session", handler.Session)
		api.DELETE("/session", handler.Logout)

		api.GET("/products", handler.Products)
		api.GET("/hubs", handler.Hubs)

		api.GET("/cart", handler.Cart)
		api.DELETE("/cart", handler.ClearCart)
		api.POST("/cart/items", handler.AddCartItem)
		api.PATCH("/cart/items/:productId", handler.UpdateCartItem)
		api.DELETE("/cart/items/:productId", handler.RemoveCartItem)

		api.POST("/checkout", handler.Checkout)
		api.GET("/orders", handler.Orders)
		api.GET("/shipments", handler.Shipments)
		api.PATCH("/shipments/:id/status", handler.UpdateShipmentStatus)

		api.POST("/priority/evaluate", handler.EvaluatePriority)
		api.POST("/advisor/evaluate", handler.EvaluateAdvisor)

		admin := api.Group("/admin", adminOnly(handler.store))
		admin.GET("/dashboard", handler.Dashboard)
		admin.GET("/simulator", handler.Simulator)
		admin.GET("/reports/export", handler.ExportReport)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
