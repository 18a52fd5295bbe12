package smt

// SortEnv maps variable names to their declared sorts. The driver owns
// one global instance populated by declare-fun commands; `let` bodies are
// elaborated against transient clones, so sibling scopes never observe
// each other's bindings and outer bindings are never shadowed in place.
type SortEnv struct {
	vars map[string]Sort
}

// NewSortEnv creates an empty environment.
func NewSortEnv() *SortEnv {
	return &SortEnv{vars: make(map[string]Sort)}
}

// Declare binds name to sort in this environment.
func (e *SortEnv) Declare(name string, sort Sort) {
	e.vars[name] = sort
}

// Lookup returns the sort bound to name.
func (e *SortEnv) Lookup(name string) (Sort, bool) {
	s, ok := e.vars[name]
	return s, ok
}

// Clone returns an independent copy. Declarations on the copy are not
// visible to the original.
func (e *SortEnv) Clone() *SortEnv {
	vars := make(map[string]Sort, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &SortEnv{vars: vars}
}

// Len returns the number of bindings.
func (e *SortEnv) Len() int {
	return len(e.vars)
}
