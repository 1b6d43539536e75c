package hooks

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/steveyegge/annn/internal/telemetry"
	"github.com/steveyegge/annn/internal/types"
)

const scopeName = "github.com/steveyegge/annn/hooks"

// Task outcomes recorded on spans and the annn.hook.tasks counter
const (
	outcomeNoTrigger = "no_trigger"
	outcomeSkipped   = "skipped"
	outcomeSaved     = "saved"
	outcomeFailed    = "failed"
)

type instruments struct {
	tracer trace.Tracer
	tasks  metric.Int64Counter
}

func newInstruments() *instruments {
	tasks, _ := telemetry.Meter(scopeName).Int64Counter("annn.hook.tasks",
		metric.WithDescription("Tasks evaluated by the annotation hook, by outcome"),
	)
	return &instruments{
		tracer: telemetry.Tracer(scopeName),
		tasks:  tasks,
	}
}

func (i *instruments) startTask(ctx context.Context, task *types.Task) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, "hook.task",
		trace.WithAttributes(
			attribute.String("task.uuid", task.UUID),
			attribute.Int("task.id", task.ID),
			attribute.String("task.status", string(task.Status)),
		),
	)
}

func (i *instruments) endTask(ctx context.Context, span trace.Span, outcome string) {
	span.SetAttributes(attribute.String("hook.outcome", outcome))
	if outcome == outcomeFailed {
		span.SetStatus(codes.Error, "annotation not saved")
	}
	if i.tasks != nil {
		i.tasks.Add(ctx, 1, metric.WithAttributes(attribute.String("hook.outcome", outcome)))
	}
	span.End()
}
