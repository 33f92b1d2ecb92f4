package routes

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront-catalog/internal/handlers"
)

// ReadinessFunc verifica las dependencias externas (MongoDB)
type ReadinessFunc func(ctx context.Context) error

type Options struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	MaxUploadBytes int64
	Ready          ReadinessFunc
}

// NewRouter arma el engine con middlewares, health checks y rutas del catálogo
func NewRouter(h *handlers.ProductHandler, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	if opts.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = opts.MaxUploadBytes
	}
	router.Use(
		handlers.RequestID(),
		handlers.AccessLog(logger),
		handlers.Recovery(logger),
		cors.New(corsConfig(opts.CORSOrigins)),
		handlers.ErrorHandler(logger),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(opts.Ready))

	RegisterRoutes(router, h)
	return router
}

func RegisterRoutes(router gin.IRouter, h *handlers.ProductHandler) {
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("/latest", h.GetLatestProducts)
		products.GET("/categories", h.GetAllCategories)
		products.GET("/search", h.SearchProducts)
		products.GET("/featured", h.GetFeaturedProducts)
		products.GET("", h.GetAllProducts)
		products.POST("", h.CreateNewProduct)
		products.GET("/:id", h.GetProductDetails)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.PATCH("/:id/featured", h.ToggleFeaturedStatus)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(ready ReadinessFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
