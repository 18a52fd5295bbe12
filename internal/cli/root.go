// Package cli provides the command-line interface for satchel.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/satchel/internal/cli/commands"
	"github.com/leapstack-labs/satchel/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "satchel",
		Short: "satchel - constraint script runner",
		Long: `satchel parses SMT-LIB 2 style constraint scripts, elaborates them
into sorted expressions, and drives an external SMT solver, printing one
sat/unsat/unknown line per check-sat.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.NewContext(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, log)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if used := config.FileUsed(); used != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", used)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./satchel.yaml)")
	rootCmd.PersistentFlags().String("solver", "", "External solver command (default: z3)")
	rootCmd.PersistentFlags().StringSlice("solver-args", nil, "Extra arguments passed to the solver")
	rootCmd.PersistentFlags().Int("timeout", 0, "Solver timeout in seconds (0 = none)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject unterminated lists at end of input")
	rootCmd.PersistentFlags().String("state", "", "Path to run-history database")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record runs in the history database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose trace output on stderr")

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
