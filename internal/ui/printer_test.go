package ui

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Banner(5, "Fix bug", "completed")

	want := "\n" +
		"[annn] Task 5: Fix bug\n" +
		"[annn] Event: completed\n" +
		"[annn] Opening editor for annotation...\n" +
		"\n"
	if got := buf.String(); got != want {
		t.Errorf("Banner() wrote %q, want %q", got, want)
	}
}

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"empty", func(p *Printer) { p.EmptyAnnotation() }, "[annn] Empty annotation, skipping.\n"},
		{"saved", func(p *Printer) { p.Saved() }, "[annn] Annotation saved.\n"},
		{"save failed", func(p *Printer) { p.SaveFailed("No matches.") }, "[annn] Error saving annotation: No matches.\n"},
		{"error", func(p *Printer) { p.Error(errors.New("boom")) }, "[annn] Error: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf))
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilWriter(t *testing.T) {
	NewPrinter(nil).Saved()
}
