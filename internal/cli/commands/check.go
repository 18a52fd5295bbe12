// Package commands implements the satchel subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/satchel/internal/cli/config"
	"github.com/leapstack-labs/satchel/internal/driver"
	"github.com/leapstack-labs/satchel/internal/solver"
	"github.com/leapstack-labs/satchel/internal/state"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Watch bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <script>",
		Short: "Run a constraint script against the solver",
		Long: `Parse a constraint script, elaborate its assertions, and drive the
configured solver. Exactly one sat/unsat/unknown line is printed per
check-sat form; all diagnostics go to stderr.`,
		Example: `  # Check a script with the default solver (z3)
  satchel check constraints.smt2

  # Use a different solver and a 30 second timeout
  satchel check --solver cvc5 --timeout 30 constraints.smt2

  # Re-check whenever the script changes
  satchel check --watch constraints.smt2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the script when the file changes")

	return cmd
}

func runCheck(cmd *cobra.Command, script string, opts *CheckOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := config.LoggerFrom(ctx)

	if !opts.Watch {
		return checkOnce(ctx, cmd, cfg, log, script)
	}

	// Watch mode: re-run on every write, keep going on script errors.
	if err := checkOnce(ctx, cmd, cfg, log, script); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors often replace
	// the file on save, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(script)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", script, err)
	}
	target, _ := filepath.Abs(script)
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes...\n", script)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if abs != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("script changed", "event", event.Op.String())
			if err := checkOnce(ctx, cmd, cfg, log, script); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watch error: %v\n", err)
		}
	}
}

// checkOnce runs the script once and records the outcome in the history
// store unless history is disabled.
func checkOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log *slog.Logger, script string) error {
	input, err := os.ReadFile(script)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	sol := solver.NewExec(solver.ExecOptions{
		Command: cfg.SolverCmd,
		Args:    cfg.SolverArgs,
		Timeout: cfg.Timeout(),
		Log:     log,
	})
	d := driver.New(sol, cmd.OutOrStdout(), driver.Options{
		Strict: cfg.Strict,
		Log:    log,
	})

	start := time.Now()
	runErr := d.Run(ctx, string(input))

	if !cfg.NoHistory {
		if err := recordRun(cfg, d, script, start, runErr); err != nil {
			log.Warn("failed to record run history", "error", err)
		}
	}
	return runErr
}

func recordRun(cfg *config.Config, d *driver.Driver, script string, start time.Time, runErr error) error {
	dir := filepath.Dir(cfg.StatePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return err
	}
	defer store.Close()
	if err := store.InitSchema(); err != nil {
		return err
	}

	verdicts := make([]string, 0, len(d.Verdicts()))
	for _, v := range d.Verdicts() {
		verdicts = append(verdicts, v.String())
	}

	run := &state.CheckRun{
		Script:    script,
		Verdicts:  strings.Join(verdicts, " "),
		Variables: d.DeclaredVariables(),
		Status:    state.RunStatusCompleted,
		StartedAt: start,
		Duration:  time.Since(start),
	}
	if runErr != nil {
		run.Status = state.RunStatusFailed
		run.Error = runErr.Error()
	}
	return store.RecordRun(run)
}
