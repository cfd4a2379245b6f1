package peg

import (
	"log/slog"

	"github.com/organix/crlf/pkg"
	"github.com/organix/crlf/value"
)

// Errors returned by [Compile].
var (
	ErrMalformed     = pkg.NewError("malformed grammar")
	ErrUnknownKind   = pkg.NewError("unknown pattern kind")
	ErrInvalidRange  = pkg.NewError("invalid range")
	ErrUndefinedRule = pkg.NewError("undefined rule")
	ErrLeftRecursion = pkg.NewError("left recursion")
)

// Compile compiles a grammar AST of the form
//
//	{"kind": "grammar", "rules": {<name>: <pattern-ast>, ...}}
//
// into a [Grammar]. Every malformed node, reference to an undefined rule
// and left-recursive rule is reported as an error.
func Compile(ast value.Value, opts ...Option) (*Grammar, error) {
	g := &Grammar{}
	applyOptions(g, opts...)

	src, ok := ast.(value.Object)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "grammar is not an object"),
		)
	}

	if err := expectKind(src, KindGrammar); err != nil {
		return nil, err
	}

	rv, ok := src.Get("rules")
	if !ok {
		return nil, ErrMalformed.With(slog.String("issue", "missing rules"))
	}

	rules, ok := rv.(value.Object)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "rules is not an object"),
			slog.String("type", rv.Kind().String()),
		)
	}

	g.rules = make(map[string]Pattern, rules.Len())
	g.names = rules.Names()

	c := compiler{grammar: g}

	for name, sub := range rules.All() {
		p, err := c.compile(sub)
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("rule", name))
		}

		g.rules[name] = p

		g.logger.Trace("rule compiled",
			slog.String("rule", name),
			slog.String("pattern", p.String()),
		)
	}

	if err := checkReferences(g); err != nil {
		return nil, err
	}

	if err := checkLeftRecursion(g); err != nil {
		return nil, err
	}

	g.logger.Debug("grammar compiled", slog.Int("rules", len(g.names)))

	return g, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(ast value.Value, opts ...Option) *Grammar {
	g, err := Compile(ast, opts...)
	if err != nil {
		panic(err)
	}

	return g
}

// compiler turns pattern ASTs into patterns owned by grammar.
type compiler struct {
	grammar *Grammar
}

func (c compiler) compile(ast value.Value) (Pattern, error) {
	src, ok := ast.(value.Object)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "pattern is not an object"),
			slog.String("type", kindOf(ast)),
		)
	}

	kind, err := stringField(src, "kind")
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindFail:
		return Fail{}, nil

	case KindNothing:
		return Nothing{}, nil

	case KindAnything:
		return Anything{}, nil

	case KindTerminal:
		v, err := field(src, "value")
		if err != nil {
			return nil, err
		}

		return Terminal{Value: v}, nil

	case KindRange:
		from, err := numberField(src, "from")
		if err != nil {
			return nil, err
		}

		to, err := numberField(src, "to")
		if err != nil {
			return nil, err
		}

		if from > to {
			return nil, ErrInvalidRange.With(
				slog.Float64("from", from),
				slog.Float64("to", to),
			)
		}

		return Range{From: from, To: to}, nil

	case KindRule:
		name, err := stringField(src, "name")
		if err != nil {
			return nil, err
		}

		return Rule{grammar: c.grammar, Name: name}, nil

	case KindSequence:
		of, err := c.compileList(src)
		if err != nil {
			return nil, err
		}

		return Sequence{Of: of}, nil

	case KindAlternative:
		of, err := c.compileList(src)
		if err != nil {
			return nil, err
		}

		return Alternative{Of: of}, nil

	case KindStar:
		expr, err := c.compileExpr(src)
		if err != nil {
			return nil, err
		}

		return Star{Expr: expr}, nil

	case KindPlus:
		expr, err := c.compileExpr(src)
		if err != nil {
			return nil, err
		}

		return Plus{Expr: expr}, nil

	case KindOptional:
		expr, err := c.compileExpr(src)
		if err != nil {
			return nil, err
		}

		return Optional{Expr: expr}, nil

	default:
		return nil, ErrUnknownKind.With(slog.String("kind", kind))
	}
}

func (c compiler) compileList(src value.Object) ([]Pattern, error) {
	v, err := field(src, "of")
	if err != nil {
		return nil, err
	}

	list, ok := v.(value.Array)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "of is not an array"),
			slog.String("type", kindOf(v)),
		)
	}

	of := make([]Pattern, 0, list.Len())

	for i, sub := range list.All() {
		p, err := c.compile(sub)
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.Int("index", i))
		}

		of = append(of, p)
	}

	return of, nil
}

func (c compiler) compileExpr(src value.Object) (Pattern, error) {
	v, err := field(src, "expr")
	if err != nil {
		return nil, err
	}

	return c.compile(v)
}

func expectKind(src value.Object, want string) error {
	kind, err := stringField(src, "kind")
	if err != nil {
		return err
	}

	if kind != want {
		return ErrMalformed.With(
			slog.String("kind", kind),
			slog.String("want", want),
		)
	}

	return nil
}

func field(src value.Object, name string) (value.Value, error) {
	v, ok := src.Get(name)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "missing field"),
			slog.String("field", name),
		)
	}

	return v, nil
}

func stringField(src value.Object, name string) (string, error) {
	v, err := field(src, name)
	if err != nil {
		return "", err
	}

	s, ok := v.(value.String)
	if !ok {
		return "", ErrMalformed.With(
			slog.String("issue", "field is not a string"),
			slog.String("field", name),
			slog.String("type", kindOf(v)),
		)
	}

	return string(s), nil
}

func numberField(src value.Object, name string) (float64, error) {
	v, err := field(src, name)
	if err != nil {
		return 0, err
	}

	n, ok := v.(value.Number)
	if !ok {
		return 0, ErrMalformed.With(
			slog.String("issue", "field is not a number"),
			slog.String("field", name),
			slog.String("type", kindOf(v)),
		)
	}

	return float64(n), nil
}

func kindOf(v value.Value) string {
	if v == nil {
		return "nil"
	}

	return v.Kind().String()
}
