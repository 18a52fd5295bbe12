// Package driver runs constraint scripts: it repeatedly parses one
// top-level form, classifies it, and drives the solver, until input is
// exhausted or an exit form is seen.
package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/satchel/pkg/sexpr"
	"github.com/leapstack-labs/satchel/pkg/smt"
)

// UnknownCommandError reports an unrecognized top-level form. It is
// fatal: the driver stops and nothing after the form is processed.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Command)
}

// Options configures a Driver.
type Options struct {
	// Strict rejects an unterminated list at end of input instead of
	// silently accepting it.
	Strict bool

	// Log receives diagnostic trace output (parsed forms, ignored
	// commands, let bindings). Defaults to a discard logger.
	Log *slog.Logger
}

// Driver owns the global sort environment and the solver connection for
// one run. It is single-threaded: each form is fully parsed, elaborated,
// and dispatched before the next is read.
type Driver struct {
	solver smt.Solver
	env    *smt.SortEnv
	out    io.Writer
	log    *slog.Logger
	strict bool
	elab   smt.Elaborator

	terminated bool
	verdicts   []smt.Verdict
}

// New creates a Driver writing verdict lines to out. Only those lines
// are contractual output; everything else goes to the trace logger.
func New(solver smt.Solver, out io.Writer, opts Options) *Driver {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		solver: solver,
		env:    smt.NewSortEnv(),
		out:    out,
		log:    log,
		strict: opts.Strict,
		elab:   smt.Elaborator{Log: log},
	}
}

// Run processes the whole script. Comments are stripped up front; any
// malformed form or unknown command aborts the run with an error. A
// well-formed script, or one cut short by an exit form, returns nil.
func (d *Driver) Run(ctx context.Context, input string) error {
	var p *sexpr.Parser
	if d.strict {
		p = sexpr.NewStrictParser(sexpr.StripComments(input))
	} else {
		p = sexpr.NewParser(sexpr.StripComments(input))
	}

	for !d.terminated && !p.AtEOF() {
		before := p.Remaining()
		node, err := p.Parse()
		if err != nil {
			return err
		}
		consumed := before[:len(before)-len(p.Remaining())]
		d.log.Debug("parsed form", "consumed", strings.TrimSpace(consumed), "tree", node.String())

		if err := d.dispatch(ctx, node); err != nil {
			return err
		}
	}
	return nil
}

// Terminated reports whether an exit form stopped the run.
func (d *Driver) Terminated() bool {
	return d.terminated
}

// Verdicts returns the verdict printed for each check-sat, in order.
func (d *Driver) Verdicts() []smt.Verdict {
	return d.verdicts
}

// DeclaredVariables returns how many variables the script declared.
func (d *Driver) DeclaredVariables() int {
	return d.env.Len()
}

func (d *Driver) dispatch(ctx context.Context, node sexpr.Node) error {
	list, ok := node.(sexpr.List)
	if !ok {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("top-level form must be a command list, got atom %s", node)}
	}
	cmd, ok := list.Head()
	if !ok {
		return &smt.MalformedExpressionError{Message: "top-level form has no command atom"}
	}

	switch string(cmd) {
	case "set-info", "set-logic":
		d.log.Debug("ignoring command", "command", string(cmd))
		return nil
	case "define-fun":
		d.log.Debug("ignoring define-fun")
		return nil
	case "declare-fun":
		return d.declareFun(list)
	case "assert":
		return d.assert(list)
	case "check-sat":
		return d.checkSat(ctx)
	case "exit":
		d.terminated = true
		return nil
	}
	return &UnknownCommandError{Command: string(cmd)}
}

// declareFun handles `(declare-fun name () Sort)`. Only zero-argument
// declarations of Real or Bool variables are supported.
func (d *Driver) declareFun(list sexpr.List) error {
	if len(list) != 4 {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("declare-fun expects name, argument list and sort, got %d elements", len(list)-1)}
	}
	name, ok := list[1].(sexpr.Atom)
	if !ok {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("declare-fun name must be an atom, got %s", list[1])}
	}
	args, ok := list[2].(sexpr.List)
	if !ok || len(args) != 0 {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("declare-fun argument list must be empty, got %s", list[2])}
	}
	sortName, ok := list[3].(sexpr.Atom)
	if !ok {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("declare-fun sort must be an atom, got %s", list[3])}
	}
	sort, ok := smt.ParseSort(string(sortName))
	if !ok {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("unsupported sort %q", string(sortName))}
	}

	d.env.Declare(string(name), sort)
	d.log.Debug("declared variable", "name", string(name), "sort", sort.String())
	return d.solver.DeclareVariable(string(name), sort)
}

// assert handles `(assert expr)`.
func (d *Driver) assert(list sexpr.List) error {
	if len(list) != 2 {
		return &smt.MalformedExpressionError{Message: fmt.Sprintf("assert expects exactly one expression, got %d elements", len(list)-1)}
	}
	expr, err := d.elab.Elaborate(list[1], d.env)
	if err != nil {
		return err
	}
	d.log.Debug("asserting", "expr", expr.String())
	return d.solver.AddAssertion(expr)
}

func (d *Driver) checkSat(ctx context.Context) error {
	verdict, _, err := d.solver.Check(ctx)
	if err != nil {
		return fmt.Errorf("solver check failed: %w", err)
	}
	d.verdicts = append(d.verdicts, verdict)
	_, err = fmt.Fprintln(d.out, verdict.String())
	return err
}
