package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	obscontext "github.com/smallbiznis/khata/internal/observability/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const HeaderRequestID = "X-Request-Id"

// MiddlewareConfig controls request logging. ErrorClassifier maps the last
// handler error to an (error_type, error_code) pair.
type MiddlewareConfig struct {
	Debug           bool
	ErrorClassifier func(err error) (string, string)
}

// GinMiddleware assigns a request id and writes one access log line per request.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := requestIDFor(c)
		c.Request = c.Request.WithContext(obscontext.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("area", obscontext.RouteArea(route)),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.Int("response_bytes", c.Writer.Size()),
		}
		if cfg.Debug {
			fields = append(fields, zap.String("path", c.Request.URL.Path))
		}
		if last := c.Errors.Last(); last != nil && cfg.ErrorClassifier != nil {
			errorType, errorCode := cfg.ErrorClassifier(last.Err)
			fields = append(fields,
				zap.String("error_type", errorType),
				zap.String("error_code", errorCode),
			)
		}

		if ce := FromContext(c.Request.Context()).Named("http").Check(accessLevel(route, status), "http_request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func requestIDFor(c *gin.Context) string {
	requestID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
	if requestID == "" || len(requestID) > 128 {
		requestID = uuid.NewString()
	}
	c.Set("request_id", requestID)
	c.Header(HeaderRequestID, requestID)
	return requestID
}

func accessLevel(route string, status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	case route == "/metrics" || route == "/healthz":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
