package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddlewareLogsAccessLine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{
		ErrorClassifier: func(err error) (string, string) { return "validation", "invalid_input" },
	}))
	r.POST("/v1/tax/breakdown", func(c *gin.Context) {
		_ = c.Error(errors.New("bad amount"))
		c.Status(http.StatusBadRequest)
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tax/breakdown", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	r.ServeHTTP(w, req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, zapcore.WarnLevel, first.Level)
	assert.Equal(t, "http", first.LoggerName)
	fields := first.ContextMap()
	assert.Equal(t, "tax", fields["area"])
	assert.Equal(t, "invalid_input", fields["error_code"])
	assert.Equal(t, "req-42", fields["request_id"])
	assert.NotContains(t, fields, "path")

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestRequestIDIsGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}
