// Package smttest provides a scripted in-memory solver for tests.
package smttest

import (
	"context"

	"github.com/leapstack-labs/satchel/pkg/smt"
)

// Declaration records one DeclareVariable call.
type Declaration struct {
	Name string
	Sort smt.Sort
}

// Solver implements smt.Solver by recording every call and replaying a
// scripted sequence of verdicts. Once the script runs out, Check keeps
// returning the last verdict (or unknown if none was scripted).
type Solver struct {
	Declarations []Declaration
	Assertions   []smt.Expression
	Verdicts     []smt.Verdict
	CheckErr     error

	checks int
}

// New creates a fake solver that answers with the given verdicts in order.
func New(verdicts ...smt.Verdict) *Solver {
	return &Solver{Verdicts: verdicts}
}

func (s *Solver) DeclareVariable(name string, sort smt.Sort) error {
	s.Declarations = append(s.Declarations, Declaration{Name: name, Sort: sort})
	return nil
}

func (s *Solver) AddAssertion(expr smt.Expression) error {
	s.Assertions = append(s.Assertions, expr)
	return nil
}

func (s *Solver) Check(_ context.Context) (smt.Verdict, smt.Model, error) {
	s.checks++
	if s.CheckErr != nil {
		return smt.VerdictUnknown, nil, s.CheckErr
	}
	if len(s.Verdicts) == 0 {
		return smt.VerdictUnknown, nil, nil
	}
	i := s.checks - 1
	if i >= len(s.Verdicts) {
		i = len(s.Verdicts) - 1
	}
	return s.Verdicts[i], nil, nil
}

// Checks returns how many times Check was called.
func (s *Solver) Checks() int {
	return s.checks
}
