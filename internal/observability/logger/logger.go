package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	obscontext "github.com/smallbiznis/khata/internal/observability/context"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the process logger. Sampling applies per message per
// second: the first SampleFirst entries pass, then one in SampleEvery.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	Level       string
	Format      string
	Debug       bool

	SampleFirst int
	SampleEvery int
}

// New builds the process logger, installs it as the zap global and flushes
// it on shutdown.
func New(lc fx.Lifecycle, cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(orDefault(cfg.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level))
	if !cfg.Debug {
		core = zapcore.NewSamplerWithOptions(core, time.Second, positive(cfg.SampleFirst, 100), positive(cfg.SampleEvery, 100))
	}

	options := []zap.Option{
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	}
	if cfg.Debug {
		options = append(options, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger := zap.New(core, options...).With(
		zap.String("service", orDefault(cfg.ServiceName, "khata")),
		zap.String("env", strings.TrimSpace(cfg.Environment)),
		zap.String("version", strings.TrimSpace(cfg.Version)),
	)
	zap.ReplaceGlobals(logger)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				_ = logger.Sync()
				return nil
			},
		})
	}

	return logger, nil
}

func newEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

func orDefault(value, def string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return def
}

func positive(value, def int) int {
	if value > 0 {
		return value
	}
	return def
}

// FromContext returns the global logger enriched with request-scoped fields.
func FromContext(ctx context.Context) *zap.Logger {
	return WithContext(ctx, zap.L())
}

// WithContext enriches the provided logger with correlation fields.
func WithContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if ctx == nil || base == nil {
		return base
	}

	fields := make([]zap.Field, 0, 2)
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if orgID := obscontext.OrgIDFromContext(ctx); orgID != "" {
		fields = append(fields, zap.String("org_id", orgID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
