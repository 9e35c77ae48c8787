package metrics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	taxComputations     metric.Int64Counter
	numbersIssued       metric.Int64Counter
	numberingFallbacks  metric.Int64Counter
	payrollComputations metric.Int64Counter
	reconciliationRuns  metric.Int64Counter
	matchProposals      metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("shutting down meter provider")
				return provider.Shutdown(ctx)
			},
		})
	}

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "khata"
	}
	meter := provider.Meter(name)

	taxComputations, err := meter.Int64Counter("khata_tax_computations_total")
	if err != nil {
		return nil, err
	}
	numbersIssued, err := meter.Int64Counter("khata_document_numbers_issued_total")
	if err != nil {
		return nil, err
	}
	numberingFallbacks, err := meter.Int64Counter("khata_document_number_fallbacks_total")
	if err != nil {
		return nil, err
	}
	payrollComputations, err := meter.Int64Counter("khata_payroll_computations_total")
	if err != nil {
		return nil, err
	}
	reconciliationRuns, err := meter.Int64Counter("khata_reconciliation_runs_total")
	if err != nil {
		return nil, err
	}
	matchProposals, err := meter.Int64Counter("khata_match_proposals_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		taxComputations:     taxComputations,
		numbersIssued:       numbersIssued,
		numberingFallbacks:  numberingFallbacks,
		payrollComputations: payrollComputations,
		reconciliationRuns:  reconciliationRuns,
		matchProposals:      matchProposals,
	}, nil
}

// RecordTaxComputation counts breakdowns by direction and split side.
func (m *Metrics) RecordTaxComputation(ctx context.Context, direction string, interState bool) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("direction", strings.TrimSpace(direction)),
		attribute.String("inter_state", strconv.FormatBool(interState)),
	)
	m.taxComputations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordNumberIssued counts minted document numbers; fallback marks the
// non-sequential form.
func (m *Metrics) RecordNumberIssued(ctx context.Context, strategy string, fallback bool) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("strategy", strings.TrimSpace(strategy)))
	m.numbersIssued.Add(ctx, 1, metric.WithAttributes(attrs...))
	if fallback {
		m.numberingFallbacks.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func (m *Metrics) RecordPayrollComputation(ctx context.Context) {
	if m == nil {
		return
	}
	m.payrollComputations.Add(ctx, 1)
}

// RecordReconciliation counts a matcher run and the proposals it produced.
func (m *Metrics) RecordReconciliation(ctx context.Context, proposals int) {
	if m == nil {
		return
	}
	m.reconciliationRuns.Add(ctx, 1)
	if proposals > 0 {
		m.matchProposals.Add(ctx, int64(proposals))
	}
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"direction":   {},
	"inter_state": {},
	"strategy":    {},
	"kind":        {},
	"route":       {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
