package value

import (
	"iter"
	"slices"
)

// Member is a single name/value binding of an [Object].
type Member struct {
	Name  string
	Value Value
}

// Object is an immutable mapping of names to values that remembers the
// order in which names were first bound.
// The zero value is the empty object.
type Object struct {
	props map[string]Value
	names []string
}

// NewObject returns an object holding members in order. A name bound more
// than once keeps its first position and its last value. Nil values become
// [Null].
func NewObject(members ...Member) Object {
	if len(members) == 0 {
		return Object{}
	}

	o := Object{
		props: make(map[string]Value, len(members)),
		names: make([]string, 0, len(members)),
	}

	for _, m := range members {
		o.bind(m.Name, m.Value)
	}

	return o
}

// bind adds or replaces a binding in place. Only used while o is private
// to its constructor.
func (o *Object) bind(name string, v Value) {
	if v == nil {
		v = Null{}
	}

	if _, ok := o.props[name]; !ok {
		o.names = append(o.names, name)
	}

	o.props[name] = v
}

// Len returns the number of names bound in o.
func (o Object) Len() int { return len(o.names) }

// Get returns the value bound to name.
func (o Object) Get(name string) (Value, bool) {
	v, ok := o.props[name]

	return v, ok
}

// Has reports whether name is bound in o.
func (o Object) Has(name string) bool {
	_, ok := o.props[name]

	return ok
}

// Names returns the bound names in insertion order.
func (o Object) Names() []string { return slices.Clone(o.names) }

// With returns a copy of o with name bound to v.
func (o Object) With(name string, v Value) Object {
	return o.Concat(NewObject(Member{Name: name, Value: v}))
}

// Without returns a copy of o with the given names removed.
func (o Object) Without(names ...string) Object {
	r := Object{
		props: make(map[string]Value, len(o.names)),
		names: make([]string, 0, len(o.names)),
	}

	for _, name := range o.names {
		if !slices.Contains(names, name) {
			r.bind(name, o.props[name])
		}
	}

	return r
}

// Concat returns a new object holding the bindings of o followed by those
// of each of others. A later binding of the same name wins.
func (o Object) Concat(others ...Object) Object {
	r := Object{
		props: make(map[string]Value, len(o.names)),
		names: make([]string, 0, len(o.names)),
	}

	for _, src := range append([]Object{o}, others...) {
		for _, name := range src.names {
			r.bind(name, src.props[name])
		}
	}

	return r
}

// Reduce folds fn over the bindings of o in insertion order.
func (o Object) Reduce(
	init Value,
	fn func(acc Value, name string, v Value) Value,
) Value {
	acc := init
	for _, name := range o.names {
		acc = fn(acc, name, o.props[name])
	}

	return acc
}

// All returns an iterator over the bindings of o in insertion order.
func (o Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range o.names {
			if !yield(name, o.props[name]) {
				return
			}
		}
	}
}

// Members returns the bindings of o in insertion order.
func (o Object) Members() []Member {
	m := make([]Member, len(o.names))
	for i, name := range o.names {
		m[i] = Member{Name: name, Value: o.props[name]}
	}

	return m
}
