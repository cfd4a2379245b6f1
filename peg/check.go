package peg

import (
	"log/slog"
	"strings"
)

// walk calls fn for p and every pattern nested in p, not following rule
// references.
func walk(p Pattern, fn func(Pattern)) {
	fn(p)

	switch x := p.(type) {
	case Sequence:
		for _, q := range x.Of {
			walk(q, fn)
		}
	case Alternative:
		for _, q := range x.Of {
			walk(q, fn)
		}
	case Star:
		walk(x.Expr, fn)
	case Plus:
		walk(x.Expr, fn)
	case Optional:
		walk(x.Expr, fn)
	}
}

// checkReferences reports the first rule reference that names no rule of g.
func checkReferences(g *Grammar) error {
	for _, name := range g.names {
		var missing string

		walk(g.rules[name], func(p Pattern) {
			if r, ok := p.(Rule); ok && missing == "" {
				if _, defined := g.rules[r.Name]; !defined {
					missing = r.Name
				}
			}
		})

		if missing != "" {
			return ErrUndefinedRule.With(
				slog.String("rule", name),
				slog.String("reference", missing),
			)
		}
	}

	return nil
}

// nullable computes, for every rule of g, whether it can succeed without
// consuming input.
func nullable(g *Grammar) map[string]bool {
	null := make(map[string]bool, len(g.names))

	for changed := true; changed; {
		changed = false

		for _, name := range g.names {
			if !null[name] && isNullable(g.rules[name], null) {
				null[name] = true
				changed = true
			}
		}
	}

	return null
}

func isNullable(p Pattern, null map[string]bool) bool {
	switch x := p.(type) {
	case Nothing, Star, Optional:
		return true

	case Rule:
		return null[x.Name]

	case Sequence:
		for _, q := range x.Of {
			if !isNullable(q, null) {
				return false
			}
		}

		return true

	case Alternative:
		for _, q := range x.Of {
			if isNullable(q, null) {
				return true
			}
		}

		return false

	case Plus:
		return isNullable(x.Expr, null)

	default:
		return false
	}
}

// leftCalls appends to calls the rules p may invoke before consuming input.
func leftCalls(p Pattern, null map[string]bool, calls []string) []string {
	switch x := p.(type) {
	case Rule:
		return append(calls, x.Name)

	case Sequence:
		for _, q := range x.Of {
			calls = leftCalls(q, null, calls)
			if !isNullable(q, null) {
				break
			}
		}

	case Alternative:
		for _, q := range x.Of {
			calls = leftCalls(q, null, calls)
		}

	case Star:
		return leftCalls(x.Expr, null, calls)

	case Plus:
		return leftCalls(x.Expr, null, calls)

	case Optional:
		return leftCalls(x.Expr, null, calls)
	}

	return calls
}

// checkLeftRecursion reports a rule that can invoke itself, directly or
// through other rules, without consuming input. Matching such a rule would
// never terminate.
func checkLeftRecursion(g *Grammar) error {
	null := nullable(g)

	edges := make(map[string][]string, len(g.names))
	for _, name := range g.names {
		edges[name] = leftCalls(g.rules[name], null, nil)
	}

	const (
		unvisited = iota
		active
		done
	)

	state := make(map[string]int, len(g.names))

	var (
		path  []string
		cycle []string
	)

	var visit func(string) bool

	visit = func(name string) bool {
		switch state[name] {
		case active:
			for i, n := range path {
				if n == name {
					cycle = append(append(cycle, path[i:]...), name)

					break
				}
			}

			return true

		case done:
			return false
		}

		state[name] = active
		path = append(path, name)

		for _, next := range edges[name] {
			if visit(next) {
				return true
			}
		}

		path = path[:len(path)-1]
		state[name] = done

		return false
	}

	for _, name := range g.names {
		if visit(name) {
			return ErrLeftRecursion.With(
				slog.String("rule", cycle[0]),
				slog.String("cycle", strings.Join(cycle, " -> ")),
			)
		}
	}

	return nil
}
