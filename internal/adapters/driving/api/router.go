package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/lexview/internal/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 10 << 20

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	Handler *Handler
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), limitBody(maxBodyBytes))

	router.GET("/healthcheck", cfg.Handler.HealthCheck)
	router.GET("/", cfg.Handler.Index)
	router.POST("/annotate", cfg.Handler.AnnotateForm)

	api := router.Group("/api")
	{
		api.POST("/render/entities", cfg.Handler.RenderEntities)
		api.POST("/render/summary", cfg.Handler.RenderSummary)
		api.POST("/annotate", cfg.Handler.Annotate)
	}

	return router
}

// requestLogger logs each request at debug level through the shared logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// Serve runs router on addr until ctx is cancelled or the listener fails.
func Serve(ctx context.Context, addr string, router http.Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP server shutdown: %v", err)
		}
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
