// Package testutil provides shared test doubles for the hook packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// RecordingLogger captures debug messages so tests can assert on logged
// events without reading the log file.
type RecordingLogger struct {
	mu       sync.Mutex
	Messages []string
}

// Logf records the formatted message.
func (l *RecordingLogger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, fmt.Sprintf(format, args...))
}

// Contains reports whether any recorded message contains substr.
func (l *RecordingLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// RequireUnix skips tests that rely on /bin/sh stub scripts.
func RequireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}
}

// WriteScript writes an executable /bin/sh script named name into dir and
// returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	RequireUnix(t)

	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0700); err != nil { // #nosec G306 -- test script must be executable
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}
