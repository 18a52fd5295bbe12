package smt

import (
	"log/slog"
	"math/big"
	"strings"

	"github.com/leapstack-labs/satchel/pkg/sexpr"
)

// boolOperators are the relational and logical operators whose
// application is always Bool-sorted. Every other operator is assumed to
// preserve the sort of its final operand, which is sufficient for the
// Real/Bool-only subset supported here.
var boolOperators = map[string]struct{}{
	"and": {}, "or": {}, "not": {},
	"=": {}, "<": {}, ">": {}, "<=": {}, ">=": {}, "=>": {},
}

// Elaborator turns generic nodes into sorted expressions. The zero value
// is ready to use; Log, when set, receives a debug line per let binding.
type Elaborator struct {
	Log *slog.Logger
}

// Elaborate resolves node against env, bottom-up and left-to-right.
// env is never mutated; `let` bodies see a transient extended clone.
func (el *Elaborator) Elaborate(node sexpr.Node, env *SortEnv) (Expression, error) {
	switch n := node.(type) {
	case sexpr.Atom:
		return el.elaborateAtom(n, env)
	case sexpr.List:
		return el.elaborateList(n, env)
	}
	return Expression{}, malformedf("unsupported node %T", node)
}

// Elaborate is the package-level convenience form without trace logging.
func Elaborate(node sexpr.Node, env *SortEnv) (Expression, error) {
	var el Elaborator
	return el.Elaborate(node, env)
}

func (el *Elaborator) elaborateAtom(atom sexpr.Atom, env *SortEnv) (Expression, error) {
	name := string(atom)
	if name == "" {
		return Expression{}, malformedf("empty atom")
	}
	if name[0] >= '0' && name[0] <= '9' || name[0] == '.' {
		numeral, err := normalizeNumeral(name)
		if err != nil {
			return Expression{}, err
		}
		return Expression{Name: numeral, Sort: SortReal}, nil
	}
	sort, ok := env.Lookup(name)
	if !ok {
		return Expression{}, malformedf("undeclared variable %q", name)
	}
	return Expression{Name: name, Sort: sort}, nil
}

func (el *Elaborator) elaborateList(list sexpr.List, env *SortEnv) (Expression, error) {
	op, ok := list.Head()
	if !ok {
		if len(list) == 0 {
			return Expression{}, malformedf("empty expression")
		}
		return Expression{}, malformedf("operator position is not an atom in %s", list)
	}
	if op == "let" {
		return el.elaborateLet(list, env)
	}

	args := make([]Expression, 0, len(list)-1)
	for _, sub := range list[1:] {
		arg, err := el.Elaborate(sub, env)
		if err != nil {
			return Expression{}, err
		}
		args = append(args, arg)
	}

	name := string(op)
	var sort Sort
	if _, isBool := boolOperators[name]; isBool {
		sort = SortBool
	} else {
		if len(args) == 0 {
			return Expression{}, malformedf("operator %q applied to no arguments", name)
		}
		sort = args[len(args)-1].Sort
	}
	return Expression{Name: name, Args: args, Sort: sort}, nil
}

// elaborateLet handles `(let ((x1 t1) (x2 t2)) body)`. Binding values are
// elaborated against the enclosing environment, so later bindings in the
// same form do not see earlier ones (plain let, not let*). The result is
// the flattened shape let(x1(t1), x2(t2), body).
func (el *Elaborator) elaborateLet(list sexpr.List, env *SortEnv) (Expression, error) {
	if len(list) != 3 {
		return Expression{}, malformedf("let expects a bindings list and a body, got %d elements", len(list)-1)
	}
	bindings, ok := list[1].(sexpr.List)
	if !ok {
		return Expression{}, malformedf("let bindings must be a list, got %s", list[1])
	}

	scoped := env.Clone()
	args := make([]Expression, 0, len(bindings)+1)
	for _, b := range bindings {
		pair, ok := b.(sexpr.List)
		if !ok || len(pair) != 2 {
			return Expression{}, malformedf("let binding must be a (name value) pair, got %s", b)
		}
		name, ok := pair[0].(sexpr.Atom)
		if !ok {
			return Expression{}, malformedf("let binding name must be an atom, got %s", pair[0])
		}
		value, err := el.Elaborate(pair[1], env)
		if err != nil {
			return Expression{}, err
		}
		if el.Log != nil {
			el.Log.Debug("let binding", "name", string(name), "value", value.String(), "sort", value.Sort.String())
		}
		scoped.Declare(string(name), value.Sort)
		args = append(args, Expression{Name: string(name), Args: []Expression{value}, Sort: value.Sort})
	}

	body, err := el.Elaborate(list[2], scoped)
	if err != nil {
		return Expression{}, err
	}
	args = append(args, body)
	return Expression{Name: "let", Args: args, Sort: body.Sort}, nil
}

// normalizeNumeral strips a trailing ".0" and validates the remainder as
// a base-10 integer. The stripping rule mirrors the integer-only solver
// backend this front end was built for: `2.0` means `2`, while any other
// fractional literal is rejected. True rational literals are a known
// extension point, not supported here.
func normalizeNumeral(atom string) (string, error) {
	for len(atom) >= 3 && strings.HasSuffix(atom, ".0") {
		atom = atom[:len(atom)-2]
	}
	if _, ok := new(big.Int).SetString(atom, 10); !ok {
		return "", malformedf("invalid numeral %q", atom)
	}
	return atom, nil
}
