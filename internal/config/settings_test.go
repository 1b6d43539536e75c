package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/steveyegge/annn/internal/testutil"
)

func writeRC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config", "annn.rc")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	logger := &testutil.RecordingLogger{}

	s := Load(filepath.Join(t.TempDir(), "nope", "annn.rc"), logger)

	if *s != *DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults %+v", *s, *DefaultSettings())
	}
	if !logger.Contains("No annn.rc found") {
		t.Errorf("missing-file message not logged: %v", logger.Messages)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		rc   string
		want Settings
	}{
		{
			name: "empty file",
			rc:   "",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
		{
			name: "all keys",
			rc:   "annn.tag=note\nannn.on_complete=no\nannn.on_delete=no\nannn.editor=nano\n",
			want: Settings{Tag: "note", OnComplete: "no", OnDelete: "no", Editor: "nano"},
		},
		{
			name: "absent keys keep defaults",
			rc:   "annn.on_delete=no\n",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "no", Editor: ""},
		},
		{
			name: "comments and blank lines ignored",
			rc:   "# annn.tag=commented\n\n   \n  # annn.editor=emacs\nannn.editor=hx\n",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: "hx"},
		},
		{
			name: "whitespace trimmed around key and value",
			rc:   "   annn.tag   =   review   \n",
			want: Settings{Tag: "review", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
		{
			name: "split at first equals sign",
			rc:   "annn.editor=env FOO=bar vim\n",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: "env FOO=bar vim"},
		},
		{
			name: "unknown keys ignored",
			rc:   "annn.colour=red\nreport.next.columns=id\nannn.tag=x\n",
			want: Settings{Tag: "x", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
		{
			name: "lines without equals ignored",
			rc:   "annn.tag ann2\ninclude other.rc\n",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
		{
			name: "keys are case sensitive",
			rc:   "ANNN.TAG=loud\n",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
		{
			name: "later line wins",
			rc:   "annn.tag=first\nannn.tag=second\n",
			want: Settings{Tag: "second", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
		{
			name: "explicit empty value",
			rc:   "annn.editor=\n",
			want: Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Load(writeRC(t, tt.rc), nil)
			if *s != tt.want {
				t.Errorf("Load() = %+v, want %+v", *s, tt.want)
			}
		})
	}
}

func TestLoadIgnoresEnvironment(t *testing.T) {
	t.Setenv("ANNN_ON_COMPLETE", "no")
	t.Setenv("ANNN_TAG", "fromenv")
	t.Setenv("ANNN_EDITOR", "emacs")

	missing := Load(filepath.Join(t.TempDir(), "annn.rc"), nil)
	if *missing != *DefaultSettings() {
		t.Errorf("Load() without file = %+v, want defaults", *missing)
	}

	s := Load(writeRC(t, "annn.editor=nano\n"), nil)
	want := Settings{Tag: "ann", OnComplete: "yes", OnDelete: "yes", Editor: "nano"}
	if *s != want {
		t.Errorf("Load() = %+v, want %+v", *s, want)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	// A directory opens but cannot be scanned.
	dir := t.TempDir()
	logger := &testutil.RecordingLogger{}

	s := Load(dir, logger)

	if *s != *DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults", *s)
	}
	if !logger.Contains("Error reading annn.rc") {
		t.Errorf("read error not logged: %v", logger.Messages)
	}
}

func TestEventFlags(t *testing.T) {
	s := DefaultSettings()
	if !s.CompleteEnabled() || !s.DeleteEnabled() {
		t.Fatalf("defaults should enable both events: %+v", *s)
	}

	s.OnComplete = "no"
	s.OnDelete = "Yes"
	if s.CompleteEnabled() {
		t.Error("CompleteEnabled() = true for on_complete=no")
	}
	if s.DeleteEnabled() {
		t.Error("DeleteEnabled() = true for on_delete=Yes, only the exact value yes enables an event")
	}
}

func TestRCPath(t *testing.T) {
	want := filepath.Join("/data", "config", "annn.rc")
	if got := RCPath("/data"); got != want {
		t.Errorf("RCPath() = %q, want %q", got, want)
	}
}

func TestDefaultDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	want := filepath.Join(home, ".task")
	if got := DefaultDataDir(); got != want {
		t.Errorf("DefaultDataDir() = %q, want %q", got, want)
	}
}
