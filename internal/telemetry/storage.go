package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/steveyegge/annn/internal/store"
)

const storeScopeName = "github.com/steveyegge/annn/store"

// InstrumentedStore wraps store.Store with OTel tracing and metrics.
// Use WrapStore to create one; it returns the inner store unchanged when
// telemetry is disabled.
type InstrumentedStore struct {
	inner  store.Store
	tracer trace.Tracer
	ops    metric.Int64Counter
	dur    metric.Float64Histogram
	errs   metric.Int64Counter
}

// WrapStore returns s decorated with OTel instrumentation.
// When telemetry is disabled, s is returned as-is with zero overhead.
func WrapStore(s store.Store) store.Store {
	if !Enabled() {
		return s
	}
	return newInstrumentedStore(s)
}

func newInstrumentedStore(s store.Store) *InstrumentedStore {
	m := Meter(storeScopeName)
	ops, _ := m.Int64Counter("annn.store.operations",
		metric.WithDescription("Total annotate calls issued to the task CLI"),
	)
	dur, _ := m.Float64Histogram("annn.store.operation.duration",
		metric.WithDescription("Annotate call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("annn.store.errors",
		metric.WithDescription("Total failed annotate calls"),
	)
	return &InstrumentedStore{
		inner:  s,
		tracer: Tracer(storeScopeName),
		ops:    ops,
		dur:    dur,
		errs:   errs,
	}
}

// Annotate implements store.Store.
func (s *InstrumentedStore) Annotate(ctx context.Context, uuid, text string) error {
	attrs := []attribute.KeyValue{
		attribute.String("task.uuid", uuid),
		attribute.Int("annotation.length", len(text)),
	}
	ctx, span := s.tracer.Start(ctx, "store.Annotate",
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	s.ops.Add(ctx, 1)
	start := time.Now()

	err := s.inner.Annotate(ctx, uuid, text)

	s.dur.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.errs.Add(ctx, 1)
	}
	span.End()
	return err
}
