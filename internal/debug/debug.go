// Package debug provides the hook's best-effort debug log.
//
// Logging is off unless DEBUG_ANNN=1 (or --debug). When on, every message is
// appended as a timestamped line to annn_debug.log under the task data
// directory. Logging never fails the caller: every I/O error is swallowed.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar enables debug logging when set to "1".
const EnvVar = "DEBUG_ANNN"

const (
	tag        = "[annn-exit]"
	timeLayout = "2006-01-02 15:04:05"
)

// Logger receives debug events from the hook components.
type Logger interface {
	Logf(format string, args ...interface{})
}

// Discard drops every message.
var Discard Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Logf(string, ...interface{}) {}

// EnabledFromEnv reports whether DEBUG_ANNN=1.
func EnabledFromEnv() bool {
	return os.Getenv(EnvVar) == "1"
}

// DefaultPath returns the debug log location under a task data directory.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "debug", "annn_debug.log")
}

// FileLogger appends timestamped lines to a log file.
type FileLogger struct {
	path    string
	enabled bool
	now     func() time.Time
	mu      sync.Mutex
}

// NewFileLogger returns a logger writing to path. A disabled logger is a no-op.
func NewFileLogger(path string, enabled bool) *FileLogger {
	return &FileLogger{
		path:    path,
		enabled: enabled,
		now:     time.Now,
	}
}

// Enabled reports whether messages are written.
func (l *FileLogger) Enabled() bool {
	return l != nil && l.enabled
}

// Logf formats and appends one line to the log file.
func (l *FileLogger) Logf(format string, args ...interface{}) {
	if !l.Enabled() {
		return
	}

	entry := fmt.Sprintf("%s %s %s\n", l.now().Format(timeLayout), tag, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()

	_ = os.MkdirAll(filepath.Dir(l.path), 0750)

	// #nosec G304 -- log path is derived from the task data directory
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		// Silent fail - logging must never interrupt the hook
		return
	}
	defer file.Close()

	_, _ = file.WriteString(entry)
}

// Clip shortens s to at most n characters for a log line. It never splits
// a multi-byte character.
func Clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
