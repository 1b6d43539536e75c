package store

import (
	"context"
	"errors"

	"github.com/steveyegge/annn/internal/debug"
	"github.com/steveyegge/annn/internal/types"
	"github.com/steveyegge/annn/internal/ui"
)

// Persister saves captured annotations and reports the outcome to the user.
type Persister struct {
	store  Store
	out    *ui.Printer
	logger debug.Logger
}

// NewPersister returns a persister writing through s.
func NewPersister(s Store, out *ui.Printer, logger debug.Logger) *Persister {
	if logger == nil {
		logger = debug.Discard
	}
	if out == nil {
		out = ui.NewPrinter(nil)
	}
	return &Persister{store: s, out: out, logger: logger}
}

// Save annotates task with text and reports whether it succeeded.
// Failures are reported, never returned.
//
// A task without a uuid is skipped silently (debug log only) and never
// reaches the store.
func (p *Persister) Save(ctx context.Context, task *types.Task, text string) bool {
	if task.UUID == "" {
		p.logger.Logf("No UUID for task, cannot annotate")
		return false
	}

	err := p.store.Annotate(ctx, task.UUID, text)
	if err == nil {
		p.logger.Logf("Annotation saved to %s", task.UUID)
		p.out.Saved()
		return true
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		p.logger.Logf("Annotate failed: %s", cmdErr.Stderr)
		p.out.SaveFailed(cmdErr.Stderr)
		return false
	}

	p.logger.Logf("Exception saving annotation: %v", err)
	p.out.Error(err)
	return false
}
