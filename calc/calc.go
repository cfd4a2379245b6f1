package calc

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/pkg"
	"github.com/organix/crlf/value"
)

// Errors returned by expression compilation and evaluation.
var (
	ErrMalformed = pkg.NewError("malformed expression")
	ErrCompile   = pkg.NewError("expression compilation failed")
	ErrEvaluate  = pkg.NewError("expression evaluation failed")
)

// KindExpression is the kind of an expression AST.
const KindExpression = "expression"

// Expression is a compiled expression. It is immutable and may be evaluated
// concurrently.
type Expression struct {
	program  *vm.Program
	defaults value.Object
	grammars map[string]*peg.Grammar
	logger   log.Logger
	source   string
}

// Option configures compilation of an [Expression].
type Option func(*Expression)

// WithGrammar makes g available to the expression under name, for use with
// the match function.
func WithGrammar(name string, g *peg.Grammar) Option {
	return func(e *Expression) {
		e.grammars[name] = g
	}
}

// WithLogger sets the logger that traces compilation and evaluation.
func WithLogger(logger log.Logger) Option {
	return func(e *Expression) {
		e.logger = logger
	}
}

// Compile compiles an expression AST:
//
//	{"kind": "expression", "source": <string>,
//	 "env": {<name>: <value>, ...}?, "grammars": {<name>: <grammar-ast>, ...}?}
//
// The names of env are declared to the compiler with the types of their
// values, and the values serve as defaults during evaluation. Names that
// are not declared are allowed and evaluate to nil when not supplied.
// Each grammar is compiled with [peg.Compile] and made available to match.
func Compile(ast value.Value, opts ...Option) (*Expression, error) {
	e := &Expression{grammars: make(map[string]*peg.Grammar)}

	src, ok := ast.(value.Object)
	if !ok {
		return nil, ErrMalformed.With(slog.String("issue", "expression is not an object"))
	}

	if kind, _ := src.Get("kind"); !value.Equal(kind, value.String(KindExpression)) {
		return nil, ErrMalformed.With(
			slog.String("issue", "wrong kind"),
			slog.String("kind", value.Format(kind)),
		)
	}

	sv, ok := src.Get("source")
	if !ok {
		return nil, ErrMalformed.With(slog.String("issue", "missing source"))
	}

	source, ok := sv.(value.String)
	if !ok {
		return nil, ErrMalformed.With(slog.String("issue", "source is not a string"))
	}

	e.source = string(source)

	if ev, ok := src.Get("env"); ok {
		if e.defaults, ok = ev.(value.Object); !ok {
			return nil, ErrMalformed.With(slog.String("issue", "env is not an object"))
		}
	}

	if gv, ok := src.Get("grammars"); ok {
		gs, ok := gv.(value.Object)
		if !ok {
			return nil, ErrMalformed.With(slog.String("issue", "grammars is not an object"))
		}

		for name, gast := range gs.All() {
			g, err := peg.Compile(gast)
			if err != nil {
				return nil, pkg.WrapError(err).With(slog.String("grammar", name))
			}

			e.grammars[name] = g
		}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	env := e.nativeEnv(value.Object{})

	program, err := expr.Compile(e.source,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.Function("match", e.match, new(func(string, string, any) any)),
	)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", e.source))
	}

	e.program = program

	e.logger.Trace("expression compiled",
		slog.String("source", e.source),
		slog.Any("env", e.defaults.Names()),
		slog.Any("grammars", slices.Sorted(maps.Keys(e.grammars))),
	)

	return e, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(ast value.Value, opts ...Option) *Expression {
	e, err := Compile(ast, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

// Source returns the expression source text.
func (e *Expression) Source() string { return e.source }

// AST returns the expression source AST. Grammars supplied with
// [WithGrammar] are included.
func (e *Expression) AST() value.Object {
	m := []value.Member{
		{Name: "kind", Value: value.String(KindExpression)},
		{Name: "source", Value: value.String(e.source)},
	}

	if e.defaults.Len() > 0 {
		m = append(m, value.Member{Name: "env", Value: e.defaults})
	}

	if len(e.grammars) > 0 {
		gs := make([]value.Member, 0, len(e.grammars))
		for _, name := range slices.Sorted(maps.Keys(e.grammars)) {
			gs = append(gs, value.Member{Name: name, Value: e.grammars[name].AST()})
		}

		m = append(m, value.Member{Name: "grammars", Value: value.NewObject(gs...)})
	}

	return value.NewObject(m...)
}

// Evaluate runs the expression with env bound over the compiled defaults and
// returns the result.
func (e *Expression) Evaluate(env value.Object) (value.Value, error) {
	out, err := expr.Run(e.program, e.nativeEnv(env))
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", e.source))
	}

	result, err := value.FromNative(out)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(
			slog.String("source", e.source),
			slog.String("type", reflect.TypeOf(out).String()),
		)
	}

	e.logger.Trace("expression evaluated",
		slog.String("source", e.source),
		slog.String("result", value.Format(result)),
	)

	return result, nil
}

// nativeEnv returns the defaults overlaid by env as plain Go values.
func (e *Expression) nativeEnv(env value.Object) map[string]any {
	merged := e.defaults.Concat(env)

	native := make(map[string]any, merged.Len())
	for name, v := range merged.All() {
		native[name] = value.ToNative(v)
	}

	return native
}

// match implements match(grammar, rule, input). The input is a string or
// an array. The result is {"value": [...], "remainder": ...} or false.
func (e *Expression) match(params ...any) (any, error) {
	name, _ := params[0].(string)
	rule, _ := params[1].(string)

	g, ok := e.grammars[name]
	if !ok {
		return nil, peg.ErrUndefinedRule.With(
			slog.String("grammar", name),
			slog.String("issue", "unknown grammar"),
		)
	}

	if _, ok := g.Rule(rule); !ok {
		return nil, peg.ErrUndefinedRule.With(
			slog.String("grammar", name),
			slog.String("rule", rule),
		)
	}

	in, err := value.FromNative(params[2])
	if err != nil {
		return nil, err
	}

	seq, ok := in.(value.Sequence)
	if !ok {
		return nil, ErrEvaluate.With(
			slog.String("issue", "match input is not a string or array"),
			slog.String("type", in.Kind().String()),
		)
	}

	return value.ToNative(peg.Outcome(g.Match(rule, seq))), nil
}
