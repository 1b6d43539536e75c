// Package prompt asks the user for an annotation when a tagged task ends.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/steveyegge/annn/internal/debug"
	"github.com/steveyegge/annn/internal/editor"
	"github.com/steveyegge/annn/internal/types"
	"github.com/steveyegge/annn/internal/ui"
)

// maxSlugLen caps the description part of the scratch file name.
const maxSlugLen = 40

// Suffix is the scratch file extension, so editors pick markdown mode.
const Suffix = ".md"

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text, collapses every run of characters outside
// [a-z0-9] into one hyphen, trims hyphens from both ends and truncates
// the result to 40 characters.
func Slugify(text string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return slug
}

// TempPrefix builds the scratch file prefix annn_<id>_<event>_<slug>_.
func TempPrefix(task *types.Task, event types.Event) string {
	return fmt.Sprintf("annn_%d_%s_%s_", task.ID, event, Slugify(task.DisplayDescription()))
}

// Prompter opens the editor for one task and returns the captured text.
type Prompter struct {
	editor editor.Editor
	out    *ui.Printer
	logger debug.Logger
}

// New returns a prompter using ed for input and out for status lines.
func New(ed editor.Editor, out *ui.Printer, logger debug.Logger) *Prompter {
	if logger == nil {
		logger = debug.Discard
	}
	if out == nil {
		out = ui.NewPrinter(nil)
	}
	return &Prompter{editor: ed, out: out, logger: logger}
}

// Prompt shows a banner, runs the editor and returns the trimmed annotation.
// It returns false when the user cancelled, saved nothing, or the editor
// could not be run; none of these is an error for the hook.
func (p *Prompter) Prompt(ctx context.Context, task *types.Task, event types.Event) (string, bool) {
	opts := editor.Options{
		Prefix: TempPrefix(task, event),
		Suffix: Suffix,
		BeforeLaunch: func() {
			p.out.Banner(task.ID, task.DisplayDescription(), string(event))
		},
	}

	text, err := p.editor.Edit(ctx, "", opts)
	switch {
	case errors.Is(err, editor.ErrCancelled):
		p.logger.Logf("Editor exited without saving: %v", err)
		return "", false
	case err != nil:
		p.logger.Logf("Error during editor prompt: %v", err)
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		p.out.EmptyAnnotation()
		return "", false
	}
	return text, true
}
