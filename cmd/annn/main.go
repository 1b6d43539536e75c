// annn is a Taskwarrior on-exit hook. When a task tagged +ann (configurable)
// is completed or deleted it opens $EDITOR for an annotation and saves the
// text onto the task.
//
// Install:
//
//	go build -o ~/.task/hooks/on-exit_annn ./cmd/annn
//	echo 'include ~/.task/config/annn.rc' >> ~/.taskrc
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/annn/internal/config"
	"github.com/steveyegge/annn/internal/debug"
	"github.com/steveyegge/annn/internal/editor"
	"github.com/steveyegge/annn/internal/feed"
	"github.com/steveyegge/annn/internal/hooks"
	"github.com/steveyegge/annn/internal/prompt"
	"github.com/steveyegge/annn/internal/store"
	"github.com/steveyegge/annn/internal/telemetry"
	"github.com/steveyegge/annn/internal/ui"
)

// hookOptions carries the command-line overrides for one hook run.
type hookOptions struct {
	RCFile  string
	TaskBin string
	TmpDir  string
	Debug   bool

	// Editor streams; nil attaches the terminal.
	EditorStdin  io.Reader
	EditorStdout io.Writer
	EditorStderr io.Writer
}

var opts hookOptions

var rootCmd = &cobra.Command{
	Use:   "annn [hook args...]",
	Short: "Taskwarrior on-exit hook that prompts for an annotation",
	Long: `annn reads the tasks Taskwarrior passes on stdin after a command.

For every task carrying the trigger tag (annn.tag, default "ann") that was
completed or deleted, it opens your editor on a scratch file. Whatever you
save becomes an annotation on the task. Exit the editor with a non-zero
status (e.g. :cq in vim) or leave the file empty to skip.

Settings are read from <data>/config/annn.rc:
  annn.tag=ann              Tag that triggers the hook
  annn.on_complete=yes      Prompt on task completion
  annn.on_delete=yes        Prompt on task deletion
  annn.editor=vim           Editor override (default: $EDITOR or vim)

Set DEBUG_ANNN=1 to log to <data>/logs/debug/annn_debug.log.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runHook(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&opts.RCFile, "rc-file", "", "settings file (default <data>/config/annn.rc)")
	rootCmd.Flags().StringVar(&opts.TaskBin, "task-bin", store.DefaultBinary, "Taskwarrior executable used to save annotations")
	rootCmd.Flags().StringVar(&opts.TmpDir, "tmp-dir", "", "directory for scratch files (default $TMPDIR or /tmp)")
	rootCmd.Flags().BoolVar(&opts.Debug, "debug", false, "write the debug log even without "+debug.EnvVar+"=1")
}

// runHook processes one task feed. It never fails: problems with a single
// task are reported and the next task is handled.
func runHook(ctx context.Context, stdin io.Reader, stdout io.Writer, argv []string, o hookOptions) hooks.Summary {
	hookArgs := hooks.ParseArgs(argv)

	dataDir := hookArgs.Data
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	logger := debug.NewFileLogger(debug.DefaultPath(dataDir), o.Debug || debug.EnabledFromEnv())

	rcPath := o.RCFile
	if rcPath == "" {
		rcPath = config.RCPath(dataDir)
	}
	settings := config.Load(rcPath, logger)

	// on-exit: consume stdin, do NOT echo back
	tasks, err := feed.ReadTasks(stdin, logger)
	if err != nil {
		logger.Logf("Error reading task feed: %v", err)
	}
	logger.Logf("Hook triggered by %q, %d task(s) on stdin", hookArgs.Command, len(tasks))

	printer := ui.NewPrinter(stdout)

	ed := editor.NewFileEditor(editor.Resolve(settings), o.TmpDir, logger)
	ed.Stdin, ed.Stdout, ed.Stderr = o.EditorStdin, o.EditorStdout, o.EditorStderr

	taskStore := telemetry.WrapStore(store.NewCLIStore(o.TaskBin, hookArgs.RC))

	runner := hooks.NewRunner(settings,
		prompt.New(ed, printer, logger),
		store.NewPersister(taskStore, printer, logger),
		logger,
	)
	sum := runner.Run(ctx, tasks)

	logger.Logf("Done: %d task(s), %d triggered, %d saved, %d skipped, %d failed",
		sum.Tasks, sum.Triggered, sum.Saved, sum.Skipped, sum.Failed)
	return sum
}

func main() {
	ctx := context.Background()

	if err := telemetry.Init(ctx, "annn", Version); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	ui.ConfigureColor(os.Stdout)

	err := rootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	telemetry.Shutdown(shutdownCtx)
	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "annn: %v\n", err)
	}
	// Always succeed so Taskwarrior's own command is never reported as failed.
	os.Exit(0)
}
