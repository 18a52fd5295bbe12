// Package solver adapts an external SMT solver binary (z3, cvc5, ...)
// to the smt.Solver interface. Declarations and assertions accumulate in
// memory; each Check materializes them as an SMT-LIB 2 document, runs
// the configured command on it, and parses the verdict line.
package solver

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/leapstack-labs/satchel/pkg/smt"
)

type declaration struct {
	name string
	sort smt.Sort
}

// ExecOptions configures an Exec solver.
type ExecOptions struct {
	// Command is the solver binary to run. The script path is appended
	// after Args.
	Command string
	Args    []string

	// Timeout bounds one Check call. Zero means no timeout.
	Timeout time.Duration

	Log *slog.Logger
}

// Exec is an smt.Solver backed by a subprocess.
type Exec struct {
	opts ExecOptions
	log  *slog.Logger

	declarations []declaration
	assertions   []smt.Expression
}

// NewExec creates a subprocess-backed solver.
func NewExec(opts ExecOptions) *Exec {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Exec{opts: opts, log: log}
}

func (s *Exec) DeclareVariable(name string, sort smt.Sort) error {
	s.declarations = append(s.declarations, declaration{name: name, sort: sort})
	return nil
}

func (s *Exec) AddAssertion(expr smt.Expression) error {
	s.assertions = append(s.assertions, expr)
	return nil
}

// Check writes the accumulated script to a temporary file, runs the
// solver on it, and returns the first sat/unsat/unknown line it prints.
func (s *Exec) Check(ctx context.Context) (smt.Verdict, smt.Model, error) {
	if s.opts.Command == "" {
		return smt.VerdictUnknown, nil, fmt.Errorf("no solver command configured")
	}

	script := s.Script()

	f, err := os.CreateTemp("", "satchel-*.smt2")
	if err != nil {
		return smt.VerdictUnknown, nil, fmt.Errorf("failed to create solver input: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return smt.VerdictUnknown, nil, fmt.Errorf("failed to write solver input: %w", err)
	}
	if err := f.Close(); err != nil {
		return smt.VerdictUnknown, nil, fmt.Errorf("failed to write solver input: %w", err)
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, s.opts.Args...), f.Name())
	s.log.Debug("running solver", "command", s.opts.Command, "args", args)

	cmd := exec.CommandContext(ctx, s.opts.Command, args...)
	out, runErr := cmd.Output()

	verdict, found := parseVerdict(string(out))
	if !found {
		if ctx.Err() != nil {
			return smt.VerdictUnknown, nil, fmt.Errorf("solver timed out: %w", ctx.Err())
		}
		if runErr != nil {
			return smt.VerdictUnknown, nil, fmt.Errorf("solver failed: %w", runErr)
		}
		return smt.VerdictUnknown, nil, fmt.Errorf("solver produced no verdict")
	}
	return verdict, nil, nil
}

// Script renders the accumulated declarations and assertions as an
// SMT-LIB 2 document ending in (check-sat).
func (s *Exec) Script() string {
	var b strings.Builder
	b.WriteString("(set-logic ALL)\n")
	for _, d := range s.declarations {
		fmt.Fprintf(&b, "(declare-fun %s () %s)\n", d.name, d.sort)
	}
	for _, a := range s.assertions {
		fmt.Fprintf(&b, "(assert %s)\n", a.SMTLib())
	}
	b.WriteString("(check-sat)\n")
	return b.String()
}

// parseVerdict scans solver output for the first verdict line. Solvers
// print the verdict on its own line; anything else (models, diagnostics)
// is ignored.
func parseVerdict(out string) (smt.Verdict, bool) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "sat":
			return smt.VerdictSat, true
		case "unsat":
			return smt.VerdictUnsat, true
		case "unknown":
			return smt.VerdictUnknown, true
		}
	}
	return smt.VerdictUnknown, false
}
