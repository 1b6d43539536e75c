// Package editor runs the user's text editor on a scratch file and returns
// what was written.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"golang.org/x/term"
	"mvdan.cc/sh/v3/shell"

	"github.com/steveyegge/annn/internal/config"
	"github.com/steveyegge/annn/internal/debug"
)

// EnvEditor is consulted when annn.editor is unset.
const EnvEditor = "EDITOR"

// FallbackEditor is used when neither annn.editor nor $EDITOR is set.
const FallbackEditor = "vim"

// ErrCancelled is returned when the editor exits with a non-zero status.
var ErrCancelled = errors.New("editor cancelled")

// Resolve picks the editor command: annn.editor, then $EDITOR, then vim.
// The program is not checked for existence.
func Resolve(s *config.Settings) string {
	if s != nil && s.Editor != "" {
		return s.Editor
	}
	if editor := os.Getenv(EnvEditor); editor != "" {
		return editor
	}
	return FallbackEditor
}

// Options names the scratch file.
type Options struct {
	Prefix string
	Suffix string

	// BeforeLaunch runs once the scratch file exists, right before the
	// editor starts.
	BeforeLaunch func()
}

// Editor captures free text from the user.
type Editor interface {
	// Edit returns the trimmed text the user saved, or ErrCancelled.
	Edit(ctx context.Context, initial string, opts Options) (string, error)
}

// FileEditor edits a uniquely named temp file with an external program.
// The temp file is removed before Edit returns, whatever the outcome.
type FileEditor struct {
	Command string // editor command line, e.g. "vim" or "code --wait"
	Dir     string // temp dir; empty means os.TempDir()

	// Standard streams for the editor. A nil stream is attached to the
	// controlling terminal when the hook's own stream is not one.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger debug.Logger
}

// NewFileEditor returns an editor running command in dir.
func NewFileEditor(command, dir string, logger debug.Logger) *FileEditor {
	if logger == nil {
		logger = debug.Discard
	}
	return &FileEditor{
		Command: command,
		Dir:     dir,
		Logger:  logger,
	}
}

// Edit implements Editor.
func (e *FileEditor) Edit(ctx context.Context, initial string, opts Options) (string, error) {
	file, err := os.CreateTemp(e.Dir, opts.Prefix+"*"+opts.Suffix)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := file.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			e.logf("Failed to remove %s: %v", path, rmErr)
		}
	}()

	if initial != "" {
		if _, err := file.WriteString(initial); err != nil {
			_ = file.Close()
			return "", fmt.Errorf("write temp file: %w", err)
		}
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if opts.BeforeLaunch != nil {
		opts.BeforeLaunch()
	}

	if err := e.run(ctx, path); err != nil {
		return "", err
	}

	// #nosec G304 -- path was created by os.CreateTemp above
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (e *FileEditor) run(ctx context.Context, path string) error {
	argv, err := commandArgs(e.Command)
	if err != nil {
		return err
	}
	argv = append(argv, path)

	// #nosec G204 -- editor comes from the user's own config or environment
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	streams := &terminalStreams{}
	defer streams.Close()
	cmd.Stdin = streams.input(e.Stdin)
	cmd.Stdout = streams.output(e.Stdout, os.Stdout)
	cmd.Stderr = streams.output(e.Stderr, os.Stderr)

	// Ctrl-C belongs to the editor while it runs. A caught signal resets to
	// the default disposition in the child, unlike an ignored one.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: exit status %d", ErrCancelled, exitErr.ExitCode())
		}
		return fmt.Errorf("launch editor %q: %w", argv[0], err)
	}
	return nil
}

func (e *FileEditor) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Logf(format, args...)
	}
}

// commandArgs splits an editor command line with POSIX shell word rules,
// so quoted paths and extra flags survive.
func commandArgs(command string) ([]string, error) {
	fields, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("parse editor command %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	return fields, nil
}

// terminalStreams hands the editor the controlling terminal when the hook's
// own streams are pipes (Taskwarrior feeds hooks JSON over stdin).
type terminalStreams struct {
	tty *os.File
}

func (s *terminalStreams) terminal() *os.File {
	if s.tty == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return nil
		}
		s.tty = tty
	}
	return s.tty
}

func (s *terminalStreams) input(override io.Reader) io.Reader {
	if override != nil {
		return override
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stdin
	}
	if tty := s.terminal(); tty != nil {
		return tty
	}
	return os.Stdin
}

func (s *terminalStreams) output(override io.Writer, std *os.File) io.Writer {
	if override != nil {
		return override
	}
	if term.IsTerminal(int(std.Fd())) {
		return std
	}
	if tty := s.terminal(); tty != nil {
		return tty
	}
	return std
}

func (s *terminalStreams) Close() {
	if s.tty != nil {
		_ = s.tty.Close()
	}
}
