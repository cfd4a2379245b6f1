package peg

import (
	"slices"
	"strings"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/value"
)

// Grammar is a compiled set of named rules.
//
// A Grammar is immutable once [Compile] returns it and is safe for
// concurrent use.
type Grammar struct {
	rules  map[string]Pattern
	logger log.Logger
	names  []string
}

// Option configures compilation of a [Grammar].
type Option func(*Grammar)

// WithLogger sets the logger that traces compilation.
func WithLogger(logger log.Logger) Option {
	return func(g *Grammar) {
		g.logger = logger
	}
}

// applyOptions applies functional options to a Grammar.
func applyOptions(g *Grammar, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
}

// Rule returns a reference to the rule bound to name. Matching the
// reference matches the rule.
func (g *Grammar) Rule(name string) (Pattern, bool) {
	if _, ok := g.rules[name]; !ok {
		return nil, false
	}

	return Rule{grammar: g, Name: name}, true
}

// Pattern returns the pattern bound to name.
func (g *Grammar) Pattern(name string) (Pattern, bool) {
	p, ok := g.rules[name]

	return p, ok
}

// Names returns the rule names in source order.
func (g *Grammar) Names() []string { return slices.Clone(g.names) }

// Len returns the number of rules.
func (g *Grammar) Len() int { return len(g.names) }

// Match matches in against the rule bound to name. It fails if no such rule
// exists.
func (g *Grammar) Match(name string, in value.Sequence) (Result, bool) {
	p, ok := g.rules[name]
	if !ok {
		return fail()
	}

	if in == nil {
		in = value.String("")
	}

	return p.Match(in)
}

// AST returns the grammar source AST.
func (g *Grammar) AST() value.Object {
	rules := make([]value.Member, len(g.names))
	for i, name := range g.names {
		rules[i] = value.Member{Name: name, Value: g.rules[name].AST()}
	}

	return node(KindGrammar, value.Member{Name: "rules", Value: value.NewObject(rules...)})
}

// String returns the grammar in PEG notation, one rule per line.
func (g *Grammar) String() string {
	var sb strings.Builder

	for _, name := range g.names {
		sb.WriteString(name)
		sb.WriteString(" <- ")
		sb.WriteString(g.rules[name].String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Equal reports whether g and other bind the same names to structurally
// equal patterns.
func (g *Grammar) Equal(other *Grammar) bool {
	if g == nil || other == nil {
		return g == other
	}

	if len(g.rules) != len(other.rules) {
		return false
	}

	for name, p := range g.rules {
		q, ok := other.rules[name]
		if !ok || !Equal(p, q) {
			return false
		}
	}

	return true
}

// Equal reports whether a and b are structurally equal. Rules compare by
// name only.
func Equal(a, b Pattern) bool {
	switch x := a.(type) {
	case Fail:
		_, ok := b.(Fail)

		return ok

	case Nothing:
		_, ok := b.(Nothing)

		return ok

	case Anything:
		_, ok := b.(Anything)

		return ok

	case Terminal:
		y, ok := b.(Terminal)

		return ok && value.Equal(x.Value, y.Value)

	case Range:
		y, ok := b.(Range)

		return ok && x.From == y.From && x.To == y.To

	case Rule:
		y, ok := b.(Rule)

		return ok && x.Name == y.Name

	case Sequence:
		y, ok := b.(Sequence)

		return ok && equalList(x.Of, y.Of)

	case Alternative:
		y, ok := b.(Alternative)

		return ok && equalList(x.Of, y.Of)

	case Star:
		y, ok := b.(Star)

		return ok && Equal(x.Expr, y.Expr)

	case Plus:
		y, ok := b.(Plus)

		return ok && Equal(x.Expr, y.Expr)

	case Optional:
		y, ok := b.(Optional)

		return ok && Equal(x.Expr, y.Expr)

	default:
		return a == nil && b == nil
	}
}

func equalList(a, b []Pattern) bool {
	return slices.EqualFunc(a, b, Equal)
}
