package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestInitTracer(t *testing.T) {
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() { otel.SetTextMapPropagator(prevProp) })

	// the exporter only dials on flush, so an unused endpoint is fine
	tp, err := InitTracer("likes-test", "0.0.1", "http://127.0.0.1:1/api/traces")
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())

	carrier := propagation.MapCarrier{}
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	span.End()
	assert.NotEmpty(t, carrier.Get("traceparent"))

	// a cancelled context keeps shutdown from waiting on the collector
	shutdownCtx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = Shutdown(shutdownCtx, tp)
}

func TestShutdown_NonSDKProvider(t *testing.T) {
	assert.NoError(t, Shutdown(context.Background(), noop.NewTracerProvider()))
}
