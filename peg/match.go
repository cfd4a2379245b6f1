package peg

import (
	"github.com/organix/crlf/value"
)

// Failure is the value that represents a failed match when a match
// outcome has to be rendered as data.
var Failure value.Value = value.Boolean(false)

// Result is the outcome of a successful match.
type Result struct {
	// Values holds, in order, the elements contributed by the match.
	Values value.Array

	// Remainder is the unconsumed suffix of the input.
	Remainder value.Sequence
}

// Object renders r as {"value": [...], "remainder": ...}.
func (r Result) Object() value.Object {
	var rest value.Value = value.String("")
	if r.Remainder != nil {
		rest = r.Remainder
	}

	return value.NewObject(
		value.Member{Name: "value", Value: r.Values},
		value.Member{Name: "remainder", Value: rest},
	)
}

// Outcome renders the result of a match as data: the result object on
// success, or [Failure].
func Outcome(r Result, ok bool) value.Value {
	if !ok {
		return Failure
	}

	return r.Object()
}

func fail() (Result, bool) { return Result{}, false }

func one(v value.Value, rest value.Sequence) (Result, bool) {
	return Result{Values: value.NewArray(v), Remainder: rest}, true
}

// Match always fails.
func (Fail) Match(value.Sequence) (Result, bool) { return fail() }

// Match succeeds without consuming anything.
func (Nothing) Match(in value.Sequence) (Result, bool) {
	return Result{Remainder: in}, true
}

// Match consumes the first element of in.
func (Anything) Match(in value.Sequence) (Result, bool) {
	first, rest, ok := in.Head()
	if !ok {
		return fail()
	}

	return one(first, rest)
}

// Match consumes the first element of in if it equals p.Value.
func (p Terminal) Match(in value.Sequence) (Result, bool) {
	first, rest, ok := in.Head()
	if !ok || !value.Equal(first, p.Value) {
		return fail()
	}

	return one(first, rest)
}

// Match consumes the first element of in if it is a number within the
// range.
func (p Range) Match(in value.Sequence) (Result, bool) {
	first, rest, ok := in.Head()
	if !ok {
		return fail()
	}

	n, ok := first.(value.Number)
	if !ok || float64(n) < p.From || float64(n) > p.To {
		return fail()
	}

	return one(first, rest)
}

// Match delegates to the pattern currently bound to p.Name.
func (p Rule) Match(in value.Sequence) (Result, bool) {
	if p.grammar == nil {
		return fail()
	}

	target, ok := p.grammar.rules[p.Name]
	if !ok {
		return fail()
	}

	return target.Match(in)
}

// Match threads the remainder through every part and concatenates their
// contributions.
func (p Sequence) Match(in value.Sequence) (Result, bool) {
	parts := make([]value.Array, 0, len(p.Of))
	rest := in

	for _, part := range p.Of {
		r, ok := part.Match(rest)
		if !ok {
			return fail()
		}

		parts = append(parts, r.Values)
		rest = r.Remainder
	}

	return Result{Values: value.Array{}.Concat(parts...), Remainder: rest}, true
}

// Match returns the first part that matches in.
func (p Alternative) Match(in value.Sequence) (Result, bool) {
	for _, part := range p.Of {
		if r, ok := part.Match(in); ok {
			return r, true
		}
	}

	return fail()
}

// Match matches p.Expr as many times as possible.
func (p Star) Match(in value.Sequence) (Result, bool) {
	return matchRepeat(in, p.Expr, 0, unbounded)
}

// Match matches p.Expr as many times as possible, and at least once.
func (p Plus) Match(in value.Sequence) (Result, bool) {
	return matchRepeat(in, p.Expr, 1, unbounded)
}

// Match matches p.Expr at most once.
func (p Optional) Match(in value.Sequence) (Result, bool) {
	return matchRepeat(in, p.Expr, 0, 1)
}

const unbounded = -1

// matchRepeat matches p against the current remainder until it fails or has
// matched max times, concatenating each round's contribution. It succeeds if
// p matched at least min times.
//
// A round that succeeds without consuming anything is counted once and ends
// the loop.
func matchRepeat(in value.Sequence, p Pattern, lo, hi int) (Result, bool) {
	var (
		parts []value.Array
		count int
		rest  = in
	)

	for hi == unbounded || count < hi {
		r, ok := p.Match(rest)
		if !ok {
			break
		}

		parts = append(parts, r.Values)
		count++

		if !consumed(rest, r.Remainder) {
			break
		}

		rest = r.Remainder
	}

	if count < lo {
		return fail()
	}

	return Result{Values: value.Array{}.Concat(parts...), Remainder: rest}, true
}

// consumed reports whether after is strictly shorter than before.
func consumed(before, after value.Sequence) bool {
	if s, ok := before.(value.String); ok {
		if t, ok := after.(value.String); ok {
			return len(t) < len(s)
		}
	}

	return after.Len() < before.Len()
}
