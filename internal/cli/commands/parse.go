package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/satchel/internal/cli/config"
	"github.com/leapstack-labs/satchel/pkg/sexpr"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <script>",
		Short: "Print the parse tree of a constraint script",
		Long: `Parse a constraint script and print the canonical re-parenthesized
form of every top-level expression, one per line. Comments are stripped,
whitespace is normalized, pipe-quoted atoms are preserved verbatim.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			input, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			stripped := sexpr.StripComments(string(input))
			var p *sexpr.Parser
			if cfg.Strict {
				p = sexpr.NewStrictParser(stripped)
			} else {
				p = sexpr.NewParser(stripped)
			}

			for !p.AtEOF() {
				node, err := p.Parse()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), node.String())
			}
			return nil
		},
	}
}
