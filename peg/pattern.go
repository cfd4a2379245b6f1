package peg

import (
	"strconv"
	"strings"

	"github.com/organix/crlf/value"
)

// Pattern is a compiled grammar node.
//
// The set of implementations is closed: [Fail], [Nothing], [Anything],
// [Terminal], [Range], [Rule], [Sequence], [Alternative], [Star], [Plus]
// and [Optional]. Patterns are immutable once compiled and may be matched
// concurrently.
type Pattern interface {
	// Match attempts to match a prefix of in. On success it reports the
	// values contributed by the match and the unconsumed suffix.
	Match(in value.Sequence) (Result, bool)

	// AST returns the source AST that compiles to this pattern.
	AST() value.Object

	// String returns the pattern in PEG notation.
	String() string

	pattern()
}

type (
	// Fail never matches.
	Fail struct{}

	// Nothing matches the empty prefix of any input.
	Nothing struct{}

	// Anything matches any single element.
	Anything struct{}

	// Terminal matches a single element equal to Value.
	Terminal struct {
		Value value.Value
	}

	// Range matches a single [value.Number] element n with From <= n <= To.
	Range struct {
		From, To float64
	}

	// Rule matches the pattern bound to Name in its grammar. The reference
	// is resolved each time the rule is matched, which is what allows
	// rules to refer to themselves and to rules defined later.
	Rule struct {
		grammar *Grammar
		Name    string
	}

	// Sequence matches each of Of in turn, each against the remainder of
	// the one before.
	Sequence struct {
		Of []Pattern
	}

	// Alternative matches the first of Of that matches the input.
	Alternative struct {
		Of []Pattern
	}

	// Star matches Expr zero or more times.
	Star struct {
		Expr Pattern
	}

	// Plus matches Expr one or more times.
	Plus struct {
		Expr Pattern
	}

	// Optional matches Expr zero or one time.
	Optional struct {
		Expr Pattern
	}
)

func (Fail) pattern()        {}
func (Nothing) pattern()     {}
func (Anything) pattern()    {}
func (Terminal) pattern()    {}
func (Range) pattern()       {}
func (Rule) pattern()        {}
func (Sequence) pattern()    {}
func (Alternative) pattern() {}
func (Star) pattern()        {}
func (Plus) pattern()        {}
func (Optional) pattern()    {}

// Kinds of pattern AST nodes.
const (
	KindFail        = "fail"
	KindNothing     = "nothing"
	KindAnything    = "anything"
	KindTerminal    = "terminal"
	KindRange       = "range"
	KindRule        = "rule"
	KindSequence    = "sequence"
	KindAlternative = "alternative"
	KindStar        = "star"
	KindPlus        = "plus"
	KindOptional    = "optional"
	KindGrammar     = "grammar"
)

func node(kind string, members ...value.Member) value.Object {
	return value.NewObject(
		append([]value.Member{{Name: "kind", Value: value.String(kind)}}, members...)...,
	)
}

func listAST(ps []Pattern) value.Array {
	elems := make([]value.Value, len(ps))
	for i, p := range ps {
		elems[i] = p.AST()
	}

	return value.NewArray(elems...)
}

func (Fail) AST() value.Object     { return node(KindFail) }
func (Nothing) AST() value.Object  { return node(KindNothing) }
func (Anything) AST() value.Object { return node(KindAnything) }

func (p Terminal) AST() value.Object {
	return node(KindTerminal, value.Member{Name: "value", Value: p.Value})
}

func (p Range) AST() value.Object {
	return node(KindRange,
		value.Member{Name: "from", Value: value.Number(p.From)},
		value.Member{Name: "to", Value: value.Number(p.To)},
	)
}

func (p Rule) AST() value.Object {
	return node(KindRule, value.Member{Name: "name", Value: value.String(p.Name)})
}

func (p Sequence) AST() value.Object {
	return node(KindSequence, value.Member{Name: "of", Value: listAST(p.Of)})
}

func (p Alternative) AST() value.Object {
	return node(KindAlternative, value.Member{Name: "of", Value: listAST(p.Of)})
}

func (p Star) AST() value.Object {
	return node(KindStar, value.Member{Name: "expr", Value: p.Expr.AST()})
}

func (p Plus) AST() value.Object {
	return node(KindPlus, value.Member{Name: "expr", Value: p.Expr.AST()})
}

func (p Optional) AST() value.Object {
	return node(KindOptional, value.Member{Name: "expr", Value: p.Expr.AST()})
}

func (Fail) String() string     { return "!." }
func (Nothing) String() string  { return "()" }
func (Anything) String() string { return "." }

func (p Terminal) String() string {
	if n, ok := p.Value.(value.Number); ok && isChar(float64(n)) {
		return strconv.QuoteRune(rune(n))
	}

	return value.Format(p.Value)
}

func (p Range) String() string {
	if isChar(p.From) && isChar(p.To) {
		return "[" + quoteClass(rune(p.From)) + "-" + quoteClass(rune(p.To)) + "]"
	}

	return "[" + formatNumber(p.From) + ".." + formatNumber(p.To) + "]"
}

func (p Rule) String() string        { return p.Name }
func (p Sequence) String() string    { return join(p.Of, " ") }
func (p Alternative) String() string { return join(p.Of, " / ") }
func (p Star) String() string        { return operand(p.Expr) + "*" }
func (p Plus) String() string        { return operand(p.Expr) + "+" }
func (p Optional) String() string    { return operand(p.Expr) + "?" }

func join(ps []Pattern, sep string) string {
	if len(ps) == 0 {
		return "()"
	}

	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = operand(p)
	}

	return strings.Join(parts, sep)
}

// operand renders p, parenthesized when it is a composite.
func operand(p Pattern) string {
	switch x := p.(type) {
	case Sequence:
		if len(x.Of) > 1 {
			return "(" + x.String() + ")"
		}
	case Alternative:
		if len(x.Of) > 1 {
			return "(" + x.String() + ")"
		}
	}

	return p.String()
}

func isChar(f float64) bool {
	return f >= 0x20 && f < 0x7f && f == float64(int(f))
}

func quoteClass(r rune) string {
	switch r {
	case '-', ']', '\\':
		return `\` + string(r)
	default:
		return string(r)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
