package term

import (
	"maps"
	"slices"
	"strings"

	"github.com/organix/crlf/value"
)

// Sorts maps names to sorts. It describes the bindings of a [Binder] and
// the free variables of a term.
type Sorts map[string]string

// Names returns the names in s, sorted.
func (s Sorts) Names() []string { return slices.Sorted(maps.Keys(s)) }

// String renders s as {name:sort, ...} with names sorted.
func (s Sorts) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, name := range s.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(name)
		sb.WriteByte(':')
		sb.WriteString(s[name])
	}

	sb.WriteByte('}')

	return sb.String()
}

// Term is an abstract binding tree.
//
// The set of implementations is closed: [Variable], [Operator] and
// [Binder]. Terms are immutable.
type Term interface {
	// Sort returns the syntactic category of the term. A binder has the
	// sort of its scope.
	Sort() string

	// String returns the term in conventional notation, for example
	// plus(num[3], x:Exp) or {x:Exp}.lam(x:Exp).
	String() string

	term()
}

// Variable is a named leaf of a given sort.
type Variable struct {
	sort string
	name string
}

// Operator is a named node of a given sort applied to ordered arguments,
// optionally indexed by a value (as in the numeral family num[n]).
type Operator struct {
	index value.Value
	sort  string
	name  string
	args  []Term
}

// Binder binds names, each of a given sort, within its scope.
type Binder struct {
	scope    Term
	bindings Sorts
}

func (Variable) term() {}
func (Operator) term() {}
func (Binder) term()   {}

// NewVariable returns the variable name of the given sort.
func NewVariable(sort, name string) Variable {
	return Variable{sort: sort, name: name}
}

// NewOperator returns the operator name of the given sort applied to args.
func NewOperator(sort, name string, args ...Term) Operator {
	return Operator{sort: sort, name: name, args: slices.Clone(args)}
}

// NewIndexed returns the operator name of the given sort, indexed by index
// and applied to args.
func NewIndexed(sort, name string, index value.Value, args ...Term) Operator {
	o := NewOperator(sort, name, args...)
	o.index = index

	return o
}

// NewBinder returns a binder of bindings over scope.
func NewBinder(bindings Sorts, scope Term) Binder {
	return Binder{bindings: maps.Clone(bindings), scope: scope}
}

func (v Variable) Sort() string { return v.sort }

// Name returns the name of the variable.
func (v Variable) Name() string { return v.name }

func (o Operator) Sort() string { return o.sort }

// Name returns the name of the operator.
func (o Operator) Name() string { return o.name }

// Arguments returns a copy of the operator arguments.
func (o Operator) Arguments() []Term { return slices.Clone(o.args) }

// Arity returns the number of arguments.
func (o Operator) Arity() int { return len(o.args) }

// Index returns the index of the operator, if it has one.
func (o Operator) Index() (value.Value, bool) { return o.index, o.index != nil }

func (b Binder) Sort() string {
	if b.scope == nil {
		return ""
	}

	return b.scope.Sort()
}

// Bindings returns a copy of the names bound by b and their sorts.
func (b Binder) Bindings() Sorts { return maps.Clone(b.bindings) }

// Scope returns the term under the binder.
func (b Binder) Scope() Term { return b.scope }

func (v Variable) String() string { return v.name + ":" + v.sort }

func (o Operator) String() string {
	var sb strings.Builder

	sb.WriteString(o.name)

	if o.index != nil {
		sb.WriteByte('[')
		sb.WriteString(value.Format(o.index))
		sb.WriteByte(']')
	}

	if len(o.args) > 0 {
		sb.WriteByte('(')

		for i, arg := range o.args {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(arg.String())
		}

		sb.WriteByte(')')
	}

	return sb.String()
}

func (b Binder) String() string {
	if b.scope == nil {
		return b.bindings.String() + "."
	}

	return b.bindings.String() + "." + b.scope.String()
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Variable:
		y, ok := b.(Variable)

		return ok && x == y

	case Operator:
		y, ok := b.(Operator)
		if !ok || x.sort != y.sort || x.name != y.name {
			return false
		}

		if (x.index == nil) != (y.index == nil) ||
			x.index != nil && !value.Equal(x.index, y.index) {
			return false
		}

		return slices.EqualFunc(x.args, y.args, Equal)

	case Binder:
		y, ok := b.(Binder)

		return ok && maps.Equal(x.bindings, y.bindings) && Equal(x.scope, y.scope)

	default:
		return a == nil && b == nil
	}
}
