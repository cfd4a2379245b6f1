package value

import (
	"iter"
	"log/slog"
	"unicode/utf8"

	"github.com/organix/crlf/pkg"
)

// Sequence is an ordered, indexable [Value]: a [String] or an [Array].
type Sequence interface {
	Value

	// Len returns the number of elements.
	Len() int

	// Index returns the element at i. It panics if i is out of range.
	Index(i int) Value

	// Slice returns the elements in [i, j). It panics if the range is
	// invalid.
	Slice(i, j int) Sequence

	// Head splits the sequence into its first element and the rest.
	// ok is false when the sequence is empty.
	Head() (first Value, rest Sequence, ok bool)
}

var (
	_ Sequence = String("")
	_ Sequence = Array{}
)

// Len returns the number of code points in s.
func (s String) Len() int { return utf8.RuneCountInString(string(s)) }

// Index returns the code point at i as a [Number].
func (s String) Index(i int) Value {
	if i >= 0 {
		n := 0

		for _, r := range string(s) {
			if n == i {
				return Number(r)
			}

			n++
		}
	}

	panic(outOfRange(i, s.Len()))
}

// Slice returns the code points in [i, j).
func (s String) Slice(i, j int) Sequence {
	if n := s.Len(); i < 0 || j < i || j > n {
		panic(outOfRange(j, n))
	}

	return s[runeOffset(string(s), i):runeOffset(string(s), j)]
}

// Head returns the first code point and the remaining text.
func (s String) Head() (Value, Sequence, bool) {
	if len(s) == 0 {
		return nil, s, false
	}

	r, size := utf8.DecodeRuneInString(string(s))

	return Number(r), s[size:], true
}

// Runes returns an iterator over the code points of s as [Number]s.
func (s String) Runes() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, r := range string(s) {
			if !yield(Number(r)) {
				return
			}
		}
	}
}

// String returns s as a Go string.
func (s String) String() string { return string(s) }

// Array is an immutable ordered list of values.
// The zero value is the empty array.
type Array struct {
	elems []Value
}

// NewArray returns an array holding a copy of elems. Nil elements become
// [Null].
func NewArray(elems ...Value) Array {
	if len(elems) == 0 {
		return Array{}
	}

	cp := make([]Value, len(elems))

	for i, e := range elems {
		if e == nil {
			e = Null{}
		}

		cp[i] = e
	}

	return Array{elems: cp}
}

// Len returns the number of elements in a.
func (a Array) Len() int { return len(a.elems) }

// Index returns the element at i.
func (a Array) Index(i int) Value {
	if i < 0 || i >= len(a.elems) {
		panic(outOfRange(i, len(a.elems)))
	}

	return a.elems[i]
}

// Slice returns the elements in [i, j).
func (a Array) Slice(i, j int) Sequence { return a.Extract(i, j) }

// Extract is [Array.Slice] returning an [Array].
func (a Array) Extract(i, j int) Array {
	if i < 0 || j < i || j > len(a.elems) {
		panic(outOfRange(j, len(a.elems)))
	}

	if i == j {
		return Array{}
	}

	// Cap the slice so appends on the result never write into a.
	return Array{elems: a.elems[i:j:j]}
}

// Head returns the first element and the remaining elements.
func (a Array) Head() (Value, Sequence, bool) {
	if len(a.elems) == 0 {
		return nil, a, false
	}

	return a.elems[0], a.Extract(1, len(a.elems)), true
}

// Append returns a new array with elems added at the end.
func (a Array) Append(elems ...Value) Array {
	return a.Concat(NewArray(elems...))
}

// Concat returns a new array holding the elements of a followed by the
// elements of each of others.
func (a Array) Concat(others ...Array) Array {
	n := len(a.elems)
	for _, o := range others {
		n += len(o.elems)
	}

	if n == len(a.elems) {
		return a
	}

	elems := make([]Value, 0, n)
	elems = append(elems, a.elems...)

	for _, o := range others {
		elems = append(elems, o.elems...)
	}

	return Array{elems: elems}
}

// Reduce folds fn over the elements of a from left to right.
func (a Array) Reduce(init Value, fn func(acc, elem Value) Value) Value {
	acc := init
	for _, e := range a.elems {
		acc = fn(acc, e)
	}

	return acc
}

// All returns an iterator over the index and element pairs of a.
func (a Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, e := range a.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Values returns a copy of the elements of a.
func (a Array) Values() []Value {
	return append([]Value(nil), a.elems...)
}

// runeOffset returns the byte offset of the k-th code point in s, or len(s)
// when s has exactly k code points.
func runeOffset(s string, k int) int {
	for off := range s {
		if k == 0 {
			return off
		}

		k--
	}

	return len(s)
}

func outOfRange(i, n int) *pkg.Error {
	return ErrIndex.With(slog.Int("index", i), slog.Int("length", n))
}
