// Package smt elaborates generic S-expression trees into sorted
// expressions and defines the solver interface the driver talks to.
package smt

// Sort is the type of a value in the constraint language. The set is
// closed: scripts can only declare Bool and Real variables.
type Sort int

const (
	SortBool Sort = iota
	SortReal
)

func (s Sort) String() string {
	switch s {
	case SortBool:
		return "Bool"
	case SortReal:
		return "Real"
	}
	return "Unknown"
}

// ParseSort resolves a declared sort name. Only the exact spellings
// "Bool" and "Real" are accepted.
func ParseSort(name string) (Sort, bool) {
	switch name {
	case "Bool":
		return SortBool, true
	case "Real":
		return SortReal, true
	}
	return 0, false
}
