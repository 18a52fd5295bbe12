package smt

import "context"

// Verdict is the three-valued satisfiability result.
type Verdict int

const (
	VerdictSat Verdict = iota
	VerdictUnsat
	VerdictUnknown
)

func (v Verdict) String() string {
	switch v {
	case VerdictSat:
		return "sat"
	case VerdictUnsat:
		return "unsat"
	}
	return "unknown"
}

// Model is a variable assignment a solver may return alongside a sat
// verdict. The driver never inspects it.
type Model map[string]string

// Solver is the external constraint solver as seen by the driver.
// Constraints accumulate across AddAssertion calls; there is no
// retraction or push/pop.
type Solver interface {
	// DeclareVariable announces a fresh variable of the given sort.
	DeclareVariable(name string, sort Sort) error

	// AddAssertion adds one elaborated constraint.
	AddAssertion(expr Expression) error

	// Check decides satisfiability of all accumulated constraints.
	// The model is optional and may be nil even for a sat verdict.
	Check(ctx context.Context) (Verdict, Model, error)
}
