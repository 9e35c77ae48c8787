package observability

import (
	"testing"

	"github.com/smallbiznis/khata/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaultsFromAppConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:      "khata",
		AppVersion:   "1.2.3",
		Environment:  "production",
		OTLPEndpoint: "collector:4317",
	})

	assert.Equal(t, "khata", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", " HTTP ")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_SERVICE_NAME", "khata-worker")

	cfg := LoadConfig(config.Config{AppName: "khata", Environment: "production"})

	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, "khata-worker", cfg.ServiceName)
	assert.True(t, cfg.Debug())
}

func TestDebugForDevelopmentEnvironments(t *testing.T) {
	assert.True(t, Config{Environment: "Local"}.Debug())
	assert.False(t, Config{Environment: "staging", LogLevel: "info"}.Debug())
}
