package logger

import (
	"context"
	"testing"

	obscontext "github.com/smallbiznis/khata/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(nil, Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewInstallsGlobalLogger(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	log, err := New(nil, Config{Level: "warn", Format: "console", Debug: true})
	require.NoError(t, err)

	assert.Same(t, log, zap.L())
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestWithContextAddsCorrelationFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := obscontext.WithRequestID(context.Background(), "req-7")
	ctx = obscontext.WithOrgID(ctx, "1001")

	WithContext(ctx, zap.New(core)).Info("numbered")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "1001", fields["org_id"])
}
