package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"surveyexport/pkg/contracts"
)

const (
	ServiceName    = "survey-exporter"
	ServiceVersion = contracts.Version
	MeterName      = "surveyexport"
)

// Pipeline stage names used for spans and the stage duration histogram
const (
	StageLoad     = "load"
	StageMetadata = "metadata"
	StageGroup    = "group"
	StageReport   = "report"
	StageWrite    = "write"
)

// TelemetryConfig holds tracing and metrics settings for one run
type TelemetryConfig struct {
	ServiceName    string
	ServiceVersion string
	TraceExporter  string // "stdout" or "none"
	MetricsFile    string // Prometheus textfile; empty disables metrics
	TraceWriter    io.Writer
}

// DefaultTelemetryConfig returns a configuration with tracing and metrics disabled
func DefaultTelemetryConfig() *TelemetryConfig {
	return &TelemetryConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		TraceExporter:  "none",
	}
}

// Telemetry holds the providers and run instruments.
// Tracer and Meter are always usable; they are no-ops when disabled.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *RunMetrics
	Registry       *prometheus.Registry
	MetricsFile    string
	Logger         *slog.Logger
}

// RunMetrics are the counters and histogram recorded by an export run
type RunMetrics struct {
	RowsKept      metric.Int64Counter
	RowsDropped   metric.Int64Counter
	CellsGrouped  metric.Int64Counter
	FilesWritten  metric.Int64Counter
	StageDuration metric.Float64Histogram
}

// InitializeTelemetry builds the tracer and meter for a run
func InitializeTelemetry(cfg *TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if cfg == nil {
		cfg = DefaultTelemetryConfig()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = ServiceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = ServiceVersion
	}

	ctx := context.Background()

	res := createResource(cfg)

	tel := &Telemetry{
		Logger:      logger,
		MetricsFile: cfg.MetricsFile,
	}

	if err := initializeTracing(ctx, cfg, res, tel); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(ctx, cfg, res, tel); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	metrics, err := CreateRunMetrics(tel.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create run metrics: %w", err)
	}
	tel.Metrics = metrics

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_enabled", tel.MeterProvider != nil))

	return tel, nil
}

func createResource(cfg *TelemetryConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

func initializeTracing(ctx context.Context, cfg *TelemetryConfig, res *resource.Resource, tel *Telemetry) error {
	switch cfg.TraceExporter {
	case "", "none":
		tel.Tracer = tracenoop.NewTracerProvider().Tracer(MeterName)
		return nil
	case "stdout":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	writer := cfg.TraceWriter
	if writer == nil {
		writer = os.Stdout
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithPrettyPrint(),
		stdouttrace.WithWriter(writer),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	tel.TracerProvider = tp
	tel.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	tel.Logger.DebugContext(ctx, "Tracing initialized", slog.String("exporter", cfg.TraceExporter))
	return nil
}

func initializeMetrics(ctx context.Context, cfg *TelemetryConfig, res *resource.Resource, tel *Telemetry) error {
	if cfg.MetricsFile == "" {
		tel.Meter = metricnoop.NewMeterProvider().Meter(MeterName)
		return nil
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	tel.Registry = registry
	tel.MeterProvider = mp
	tel.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	tel.Logger.DebugContext(ctx, "Metrics initialized", slog.String("file", cfg.MetricsFile))
	return nil
}

// CreateRunMetrics creates the export run instruments on meter
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	rowsKept, err := meter.Int64Counter(
		"survey_rows_kept_total",
		metric.WithDescription("Rows accepted by the loader"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"survey_rows_dropped_total",
		metric.WithDescription("Rows skipped because they were not objects or carried no content"),
	)
	if err != nil {
		return nil, err
	}

	cellsGrouped, err := meter.Int64Counter(
		"survey_cells_grouped_total",
		metric.WithDescription("Cells assigned to a column family"),
	)
	if err != nil {
		return nil, err
	}

	filesWritten, err := meter.Int64Counter(
		"survey_files_written_total",
		metric.WithDescription("Output files written"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"survey_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RowsKept:      rowsKept,
		RowsDropped:   rowsDropped,
		CellsGrouped:  cellsGrouped,
		FilesWritten:  filesWritten,
		StageDuration: stageDuration,
	}, nil
}

// StartStage opens a span for a pipeline stage
func (t *Telemetry) StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return t.Tracer.Start(ctx, "survey."+stage, trace.WithAttributes(attribute.String("stage", stage)))
}

// EndStage records the stage duration and closes span, marking it failed when err is set
func (t *Telemetry) EndStage(ctx context.Context, span trace.Span, stage string, started time.Time, err error) {
	if err != nil {
		RecordError(ctx, err)
	}
	if t.Metrics != nil {
		t.Metrics.StageDuration.Record(ctx, time.Since(started).Seconds(),
			metric.WithAttributes(attribute.String("stage", stage)))
	}
	span.End()
}

// WriteMetricsFile writes the current metrics to the configured textfile
func (t *Telemetry) WriteMetricsFile() error {
	if t.Registry == nil || t.MetricsFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.MetricsFile), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(t.MetricsFile, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", t.MetricsFile, err)
	}
	return nil
}

// Shutdown writes the metrics textfile and flushes both providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if err := t.WriteMetricsFile(); err != nil {
		errs = append(errs, err)
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %w", errors.Join(errs...))
	}

	t.Logger.DebugContext(ctx, "Telemetry shutdown complete")
	return nil
}

func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// SpanIDFromContext extracts the active span ID from context
func SpanIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.SpanID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}
