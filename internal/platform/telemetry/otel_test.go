package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew_Disabled(t *testing.T) {
	provider, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	_, span := provider.TracerProvider().Tracer("test").Start(context.Background(), "noop")
	span.End()

	assert.False(t, span.SpanContext().IsValid(), "disabled provider records nothing")
	assert.Nil(t, provider.meterProvider, "no reader means a noop meter provider")

	counter, err := provider.MeterProvider().Meter("test").Int64Counter("noop.count")
	require.NoError(t, err)
	assert.NotPanics(t, func() { counter.Add(context.Background(), 1) })

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewWithExporter_ExportsSpans(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	exporter := tracetest.NewInMemoryExporter()
	provider, err := NewWithExporter(&Config{
		Enabled:      true,
		ServiceName:  "library-registry",
		Version:      "test",
		Environment:  "test",
		SamplingRate: 1,
	}, exporter)
	require.NoError(t, err)

	_, span := provider.TracerProvider().Tracer("test").Start(context.Background(), "library.AddAuthor")
	span.End()

	// The in-memory exporter drops its spans on Shutdown, so flush instead.
	require.NoError(t, provider.tracerProvider.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "library.AddAuthor", spans[0].Name)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNew_PrometheusWithoutTracing(t *testing.T) {
	reg := prometheus.NewRegistry()

	provider, err := New(context.Background(), &Config{
		ServiceName:      "library-registry",
		Registerer:       reg,
		MetricsNamespace: "library",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	assert.Nil(t, provider.tracerProvider, "tracing stays off when telemetry is disabled")

	counter, err := provider.MeterProvider().Meter("test").Int64Counter("books.added")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	count, err := testutil.GatherAndCount(reg, "library_books_added_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "target_info")
	require.NoError(t, err)
	assert.Zero(t, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "library_books_added_total" {
			assert.InDelta(t, 2, mf.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
}

func TestNewWithExporter_CollectsMetrics(t *testing.T) {
	originalTP := otel.GetTracerProvider()
	originalMP := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(originalTP)
		otel.SetMeterProvider(originalMP)
	})

	reader := sdkmetric.NewManualReader()
	provider, err := NewWithExporter(&Config{
		Enabled:      true,
		ServiceName:  "library-registry",
		Version:      "test",
		Environment:  "test",
		SamplingRate: 1,
	}, tracetest.NewInMemoryExporter(), reader)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	counter, err := provider.MeterProvider().Meter("test").Int64Counter("book.lookups")
	require.NoError(t, err)
	counter.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", "found")))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	got := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "book.lookups", got.Name)

	sum, ok := got.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	env, ok := rm.Resource.Set().Value("deployment.environment")
	require.True(t, ok)
	assert.Equal(t, "test", env.AsString())
}
