// Package store persists annotations onto Taskwarrior tasks.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the Taskwarrior executable.
const DefaultBinary = "task"

// ErrNoUUID is returned when a task cannot be addressed.
var ErrNoUUID = errors.New("task has no uuid")

// Store attaches annotations to stored tasks.
type Store interface {
	Annotate(ctx context.Context, uuid, text string) error
}

// CommandError reports a non-zero exit from the task CLI.
type CommandError struct {
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("task exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("task exited with status %d: %s", e.ExitCode, e.Stderr)
}

// CLIStore annotates tasks by running the task CLI with hooks disabled,
// so the annotation does not re-enter this hook.
type CLIStore struct {
	Binary string
	RCFile string // forwarded as rc:<file> when set
}

// NewCLIStore returns a store running binary, defaulting to "task".
func NewCLIStore(binary, rcFile string) *CLIStore {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLIStore{Binary: binary, RCFile: rcFile}
}

// Args returns the task CLI arguments for annotating uuid with text.
func (s *CLIStore) Args(uuid, text string) []string {
	var args []string
	if s.RCFile != "" {
		args = append(args, "rc:"+s.RCFile)
	}
	return append(args, "rc.hooks=off", "rc.confirmation=off", uuid, "annotate", text)
}

// Annotate implements Store.
func (s *CLIStore) Annotate(ctx context.Context, uuid, text string) error {
	if uuid == "" {
		return ErrNoUUID
	}

	// #nosec G204 -- binary is the task CLI; uuid and text are passed as single arguments
	cmd := exec.CommandContext(ctx, s.Binary, s.Args(uuid, text)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return fmt.Errorf("run %s: %w", s.Binary, err)
	}
	return nil
}
