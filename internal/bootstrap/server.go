package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const openAPIFile = "openapi.json"

// Registrar is implemented by the api handlers.
type Registrar interface {
	Register(router *gin.RouterGroup)
}

// Route mounts a handler under a path prefix.
type Route struct {
	Prefix  string
	Handler Registrar
}

// NewRouter builds the gin engine with the API routes, health, metrics and docs.
func NewRouter(cfg config.HTTPConfig, log *logger.Logger, routes ...Route) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	for _, r := range routes {
		r.Handler.Register(router.Group(r.Prefix))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		router.StaticFile("/"+openAPIFile, filepath.Join(cfg.SwaggerDir, openAPIFile))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/"+openAPIFile))))
	}
	return router
}

// Run serves HTTP and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger, routes ...Route) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg.HTTP, log, routes...),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "address", cfg.HTTP.Address)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve http %s: %w", cfg.HTTP.Address, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
