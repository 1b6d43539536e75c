// Package hooks runs the on-exit annotation hook over a Taskwarrior task feed.
// Tasks are handled one at a time in feed order; a failure on one task never
// stops the rest.
package hooks

import (
	"context"

	"github.com/steveyegge/annn/internal/config"
	"github.com/steveyegge/annn/internal/debug"
	"github.com/steveyegge/annn/internal/types"
)

// ShouldTrigger reports whether task warrants an annotation prompt and for
// which event. The task must carry the trigger tag, and its status must be
// completed or deleted with the matching setting set to "yes".
func ShouldTrigger(task *types.Task, settings *config.Settings) (types.Event, bool) {
	if !task.HasTag(settings.Tag) {
		return "", false
	}

	switch task.Status {
	case types.StatusCompleted:
		if settings.CompleteEnabled() {
			return types.EventCompleted, true
		}
	case types.StatusDeleted:
		if settings.DeleteEnabled() {
			return types.EventDeleted, true
		}
	}
	return "", false
}

// Prompter captures an annotation for a triggered task.
type Prompter interface {
	Prompt(ctx context.Context, task *types.Task, event types.Event) (string, bool)
}

// Saver persists a captured annotation.
type Saver interface {
	Save(ctx context.Context, task *types.Task, text string) bool
}

// Summary counts what happened during one hook run.
type Summary struct {
	Tasks     int // tasks on the feed
	Triggered int // tasks that opened the editor
	Saved     int // annotations persisted
	Skipped   int // triggered, but cancelled or left empty
	Failed    int // annotation captured but not persisted
}

// Runner handles hook execution
type Runner struct {
	settings *config.Settings
	prompter Prompter
	saver    Saver
	logger   debug.Logger
	inst     *instruments
}

// NewRunner creates a runner for one hook invocation.
func NewRunner(settings *config.Settings, prompter Prompter, saver Saver, logger debug.Logger) *Runner {
	if logger == nil {
		logger = debug.Discard
	}
	return &Runner{
		settings: settings,
		prompter: prompter,
		saver:    saver,
		logger:   logger,
		inst:     newInstruments(),
	}
}

// Run evaluates every task in order and annotates the triggered ones.
func (r *Runner) Run(ctx context.Context, tasks []*types.Task) Summary {
	var sum Summary
	sum.Tasks = len(tasks)

	for _, task := range tasks {
		r.runTask(ctx, task, &sum)
	}
	return sum
}

func (r *Runner) runTask(ctx context.Context, task *types.Task, sum *Summary) {
	ctx, span := r.inst.startTask(ctx, task)
	outcome := outcomeNoTrigger
	defer func() { r.inst.endTask(ctx, span, outcome) }()

	event, ok := ShouldTrigger(task, r.settings)
	if !ok {
		r.logger.Logf("Task %d (%s): no trigger", task.ID, short(task.Description))
		return
	}

	r.logger.Logf("Task %d (%s): triggered by %s", task.ID, short(task.Description), event)
	sum.Triggered++

	text, ok := r.prompter.Prompt(ctx, task, event)
	if !ok {
		outcome = outcomeSkipped
		sum.Skipped++
		return
	}

	if r.saver.Save(ctx, task, text) {
		outcome = outcomeSaved
		sum.Saved++
		return
	}
	outcome = outcomeFailed
	sum.Failed++
}

// short trims a description for log lines.
func short(s string) string {
	return debug.Clip(s, 30)
}
