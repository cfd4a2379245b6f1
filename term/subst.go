package term

import (
	"log/slog"
	"maps"
)

// FreeVariables returns the variables that occur in t outside every binder
// that binds them, mapped to their sorts. When a name occurs free with
// different sorts, the occurrence furthest right wins.
func FreeVariables(t Term) Sorts {
	fv := make(Sorts)
	collectFree(t, fv, nil)

	return fv
}

func collectFree(t Term, fv Sorts, bound []Sorts) {
	switch x := t.(type) {
	case Variable:
		for _, b := range bound {
			if _, ok := b[x.name]; ok {
				return
			}
		}

		fv[x.name] = x.sort

	case Operator:
		for _, arg := range x.args {
			collectFree(arg, fv, bound)
		}

	case Binder:
		if x.scope != nil {
			collectFree(x.scope, fv, append(bound, x.bindings))
		}
	}
}

// Occurs reports whether name occurs free in t.
func Occurs(t Term, name string) bool {
	_, ok := FreeVariables(t)[name]

	return ok
}

// Substitute replaces every free occurrence of the variable name in t with
// replacement.
//
// A binder that binds name shadows it, and is returned unchanged. Bound
// names are never renamed: if a free variable of replacement is bound by a
// binder enclosing a replaced occurrence, it is captured. Use
// [SubstituteAvoiding] when that can happen.
//
// It is an error for an occurrence of name to have a sort other than the
// sort of replacement.
func Substitute(t Term, name string, replacement Term) (Term, error) {
	return substitute(t, name, replacement, nil)
}

// SubstituteAvoiding is like [Substitute], but renames the names bound by a
// binder when they would capture a free variable of replacement. A renamed
// name is primed (x becomes x', then x'', ...) until it is fresh.
func SubstituteAvoiding(t Term, name string, replacement Term) (Term, error) {
	return substitute(t, name, replacement, FreeVariables(replacement))
}

// MustSubstitute is like [Substitute] but panics on error.
func MustSubstitute(t Term, name string, replacement Term) Term {
	r, err := Substitute(t, name, replacement)
	if err != nil {
		panic(err)
	}

	return r
}

// substitute implements both substitutions. A nil avoid disables renaming.
func substitute(t Term, name string, r Term, avoid Sorts) (Term, error) {
	switch x := t.(type) {
	case Variable:
		if x.name != name {
			return x, nil
		}

		if x.sort != r.Sort() {
			return nil, ErrSortMismatch.With(
				slog.String("variable", x.name),
				slog.String("sort", x.sort),
				slog.String("replacement", r.String()),
				slog.String("replacement_sort", r.Sort()),
			)
		}

		return r, nil

	case Operator:
		if len(x.args) == 0 {
			return x, nil
		}

		args := make([]Term, len(x.args))

		for i, arg := range x.args {
			s, err := substitute(arg, name, r, avoid)
			if err != nil {
				return nil, err
			}

			args[i] = s
		}

		return Operator{sort: x.sort, name: x.name, index: x.index, args: args}, nil

	case Binder:
		if _, shadowed := x.bindings[name]; shadowed || x.scope == nil {
			return x, nil
		}

		bindings, scope := x.bindings, x.scope

		if avoid != nil && Occurs(scope, name) {
			var err error

			bindings, scope, err = rename(bindings, scope, name, avoid)
			if err != nil {
				return nil, err
			}
		}

		s, err := substitute(scope, name, r, avoid)
		if err != nil {
			return nil, err
		}

		return Binder{bindings: bindings, scope: s}, nil

	default:
		return t, nil
	}
}

// rename replaces each name of bindings that is free in avoid with a fresh
// name, renaming its occurrences in scope to match.
func rename(
	bindings Sorts,
	scope Term,
	target string,
	avoid Sorts,
) (Sorts, Term, error) {
	var renamed Sorts

	for _, bound := range bindings.Names() {
		if _, clash := avoid[bound]; !clash {
			continue
		}

		if renamed == nil {
			renamed = maps.Clone(bindings)
		}

		used := FreeVariables(scope)
		fresh := bound + "'"

		for {
			_, inAvoid := avoid[fresh]
			_, inScope := used[fresh]
			_, inBindings := renamed[fresh]

			if !inAvoid && !inScope && !inBindings && fresh != target {
				break
			}

			fresh += "'"
		}

		sort := renamed[bound]

		s, err := substitute(scope, bound, NewVariable(sort, fresh), Sorts{fresh: sort})
		if err != nil {
			return nil, nil, err
		}

		delete(renamed, bound)
		renamed[fresh] = sort
		scope = s
	}

	if renamed == nil {
		return bindings, scope, nil
	}

	return renamed, scope, nil
}
