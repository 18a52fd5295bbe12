// Package sexpr parses S-expression constraint scripts into a generic
// node tree. The tree carries no type information; sorting happens later
// in pkg/smt.
package sexpr

import "strings"

// Node is either an Atom or a List. The two implementations are the only
// ones; consumers switch exhaustively over them.
type Node interface {
	node()
	// String renders the canonical re-parenthesized form: atoms verbatim
	// (pipe quoting preserved), lists space-joined inside parentheses.
	String() string
}

// Atom is a single token, stored as a view into the original input.
// Pipe-quoted atoms keep their delimiters.
type Atom string

// List is an ordered sequence of sub-nodes. Its first element, when
// present, conventionally names the operator or command.
type List []Node

func (Atom) node() {}
func (List) node() {}

func (a Atom) String() string { return string(a) }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, n := range l {
		parts[i] = n.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Head returns the list's leading atom. ok is false for an empty list or
// a list whose first element is not an atom.
func (l List) Head() (Atom, bool) {
	if len(l) == 0 {
		return "", false
	}
	a, ok := l[0].(Atom)
	return a, ok
}
