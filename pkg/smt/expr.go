package smt

import "strings"

// Expression is a sorted tree: a symbolic name, ordered sub-expressions,
// and a resolved sort. Leaves (literals and variables) have no arguments.
//
// `let` forms are flattened into this shape as well: one argument per
// binding, each a pseudo-node named after the bound variable holding the
// bound value as its single child, followed by the body as the final
// argument. Downstream consumers treat `let` like any other application.
type Expression struct {
	Name string
	Args []Expression
	Sort Sort
}

// String renders the expression in functional form, e.g. `>(x, 0)`.
// This is the trace representation; see SMTLib for solver-facing output.
func (e Expression) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// SMTLib renders the expression back into SMT-LIB 2 concrete syntax,
// reconstructing the bindings-list shape for flattened `let` nodes.
func (e Expression) SMTLib() string {
	var b strings.Builder
	e.writeSMTLib(&b)
	return b.String()
}

func (e Expression) writeSMTLib(b *strings.Builder) {
	if len(e.Args) == 0 {
		b.WriteString(e.Name)
		return
	}
	if e.Name == "let" && len(e.Args) >= 2 {
		b.WriteString("(let (")
		for i, binding := range e.Args[:len(e.Args)-1] {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('(')
			b.WriteString(binding.Name)
			b.WriteByte(' ')
			binding.Args[0].writeSMTLib(b)
			b.WriteByte(')')
		}
		b.WriteString(") ")
		e.Args[len(e.Args)-1].writeSMTLib(b)
		b.WriteByte(')')
		return
	}
	b.WriteByte('(')
	b.WriteString(e.Name)
	for _, a := range e.Args {
		b.WriteByte(' ')
		a.writeSMTLib(b)
	}
	b.WriteByte(')')
}
