// Package telemetry records per-invocation metrics through an
// OpenTelemetry meter backed by the Prometheus exporter. Since a module
// run is a short-lived batch job, the registry is dumped to a textfile
// for the node-exporter textfile collector instead of being scraped.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/rhpds/assisted-add-manifest/internal/core"
)

const meterName = "github.com/rhpds/assisted-add-manifest"

// Outcomes attached to every recorded operation.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeAuthentication = "authentication_error"
	OutcomeUpload         = "upload_error"
	OutcomeTransport      = "transport_error"
	OutcomeError          = "error"
)

// Metrics implements core.Recorder.
type Metrics struct {
	registry   *prometheus.Registry
	provider   *metric.MeterProvider
	operations otelmetric.Int64Counter
	duration   otelmetric.Float64Histogram
}

var _ core.Recorder = (*Metrics)(nil)

// New builds a meter provider on a private Prometheus registry and
// installs it as the global provider.
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(meterName)

	operations, err := meter.Int64Counter("assisted.operations",
		otelmetric.WithDescription("Assisted installer operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create operations counter: %w", err)
	}

	duration, err := meter.Float64Histogram("assisted.request.duration",
		otelmetric.WithDescription("Duration of assisted installer requests"),
		otelmetric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Metrics{
		registry:   registry,
		provider:   provider,
		operations: operations,
		duration:   duration,
	}, nil
}

// Record counts one operation and observes its duration.
func (m *Metrics) Record(ctx context.Context, operation string, err error, elapsed time.Duration) {
	opAttr := attribute.String("operation", operation)
	m.operations.Add(ctx, 1, otelmetric.WithAttributes(opAttr, attribute.String("outcome", Outcome(err))))
	m.duration.Record(ctx, elapsed.Seconds(), otelmetric.WithAttributes(opAttr))
}

// Registry exposes the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the text exposition
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown releases the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// Outcome classifies err into one of the Outcome constants.
func Outcome(err error) string {
	var (
		inputErr     *core.ErrInvalidInput
		authErr      *core.ErrAuthentication
		uploadErr    *core.ErrUpload
		transportErr *core.ErrTransport
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &inputErr):
		return OutcomeInvalidInput
	case errors.As(err, &authErr):
		return OutcomeAuthentication
	case errors.As(err, &uploadErr):
		return OutcomeUpload
	case errors.As(err, &transportErr):
		return OutcomeTransport
	default:
		return OutcomeError
	}
}
