package http

import (
	"context"
	"errors"
	"net/http"

	_ "github.com/MikeRez0/yporders/docs"
	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/adapter/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
	server *http.Server
	logger *zap.Logger
}

func NewRouter(
	conf *config.HTTP,
	orderHandler *OrderHandler,
	m *metrics.Metrics,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), requestMetrics(m))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}
	}

	return &Router{
		Engine: router,
		server: &http.Server{Addr: conf.HostString, Handler: router},
		logger: logger,
	}, nil
}

// Serve starts the HTTP server and blocks until it is shut down.
func (r *Router) Serve() error {
	r.logger.Info("listening", zap.String("address", r.server.Addr))
	err := r.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
