package smt

import "fmt"

// MalformedExpressionError reports a structural violation during
// elaboration: wrong arity, a non-atom in operator position, an
// undeclared variable reference, or an invalid numeral. All of these are
// fatal to the run; the driver never recovers from one.
type MalformedExpressionError struct {
	Message string
}

func (e *MalformedExpressionError) Error() string {
	return "malformed expression: " + e.Message
}

func malformedf(format string, args ...any) error {
	return &MalformedExpressionError{Message: fmt.Sprintf(format, args...)}
}
