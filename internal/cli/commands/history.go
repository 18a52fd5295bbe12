package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/satchel/internal/cli/config"
	"github.com/leapstack-labs/satchel/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check runs",
		Long:  `List recent check runs recorded in the history database, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet")
				return nil
			}

			store := state.NewSQLiteStore()
			if err := store.Open(cfg.StatePath); err != nil {
				return err
			}
			defer store.Close()
			if err := store.InitSchema(); err != nil {
				return err
			}

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Started", "Script", "Verdicts", "Vars", "Duration", "Status"})
			for _, run := range runs {
				verdicts := run.Verdicts
				if verdicts == "" {
					verdicts = "-"
				}
				t.AppendRow(table.Row{
					run.StartedAt.Format(time.DateTime),
					run.Script,
					verdicts,
					run.Variables,
					run.Duration.Round(time.Millisecond),
					run.Status,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")

	return cmd
}
