package ui

import (
	"fmt"
	"io"
)

// Prefix marks every line the hook prints.
const Prefix = "[annn]"

// Printer writes the hook's status lines.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w}
}

func (p *Printer) line(styled string) {
	fmt.Fprintf(p.w, "%s %s\n", RenderAccent(Prefix), styled)
}

// Banner shows which task and event the editor is opening for.
func (p *Printer) Banner(id int, description, event string) {
	fmt.Fprintln(p.w)
	p.line(fmt.Sprintf("Task %d: %s", id, description))
	p.line(fmt.Sprintf("Event: %s", event))
	p.line(RenderMuted("Opening editor for annotation..."))
	fmt.Fprintln(p.w)
}

// EmptyAnnotation reports that nothing was written.
func (p *Printer) EmptyAnnotation() {
	p.line(RenderWarn("Empty annotation, skipping."))
}

// Saved confirms the annotation reached the task.
func (p *Printer) Saved() {
	p.line(RenderPass("Annotation saved."))
}

// SaveFailed reports the host CLI's error output.
func (p *Printer) SaveFailed(stderr string) {
	p.line(RenderFail("Error saving annotation: " + stderr))
}

// Error reports an unexpected failure.
func (p *Printer) Error(err error) {
	p.line(RenderFail(fmt.Sprintf("Error: %v", err)))
}
