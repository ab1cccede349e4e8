package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, openAPIFile), []byte(`{"openapi":"3.0.3"}`), 0o644))

	router := NewRouter(config.HTTPConfig{SwaggerDir: dir}, logger.Nop(), Route{Prefix: "/ping", Handler: pingHandler{}})

	testCases := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/ping/", wantStatus: http.StatusOK, wantBody: "pong"},
		{path: "/health", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{path: "/openapi.json", wantStatus: http.StatusOK, wantBody: "3.0.3"},
		{path: "/metrics", wantStatus: http.StatusOK, wantBody: "go_goroutines"},
		{path: "/docs/index.html", wantStatus: http.StatusOK, wantBody: "swagger-ui"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}

func TestNewRouter_NoDocs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(config.HTTPConfig{}, logger.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, logger.Nop()) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
