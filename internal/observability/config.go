package observability

import (
	"strings"

	"github.com/smallbiznis/khata/internal/config"
	"github.com/spf13/viper"
)

// Config is the telemetry view of the application config. Standard OTEL_*
// variables override the app-level defaults.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
}

func LoadConfig(cfg config.Config) Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("OTEL_SERVICE_NAME", cfg.AppName)
	v.SetDefault("DEPLOYMENT_ENV", cfg.Environment)
	v.SetDefault("SERVICE_VERSION", cfg.AppVersion)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	v.SetDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")

	serviceName := strings.TrimSpace(v.GetString("OTEL_SERVICE_NAME"))
	if serviceName == "" {
		serviceName = "khata"
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          strings.TrimSpace(v.GetString("DEPLOYMENT_ENV")),
		Version:              strings.TrimSpace(v.GetString("SERVICE_VERSION")),
		LogLevel:             lower(v.GetString("LOG_LEVEL")),
		LogFormat:            lower(v.GetString("LOG_FORMAT")),
		OtelEnabled:          v.GetBool("OTEL_ENABLED"),
		OtelExporterEndpoint: strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OtelExporterProtocol: lower(v.GetString("OTEL_EXPORTER_OTLP_PROTOCOL")),
	}
}

// Debug is true for debug logging or a development-like environment.
func (c Config) Debug() bool {
	if c.LogLevel == "debug" {
		return true
	}
	switch lower(c.Environment) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
