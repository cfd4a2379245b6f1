package term

import (
	"log/slog"

	"github.com/organix/crlf/pkg"
	"github.com/organix/crlf/value"
)

// Errors returned by term operations.
var (
	ErrMalformed    = pkg.NewError("malformed term")
	ErrUnknownKind  = pkg.NewError("unknown term kind")
	ErrSortMismatch = pkg.NewError("sort mismatch")
)

// Kinds of term AST nodes.
const (
	KindVariable = "variable"
	KindOperator = "operator"
	KindBinder   = "binder"
)

// Compile compiles a term AST into a [Term]:
//
//	{"kind": "variable", "sort": <string>, "name": <string>}
//	{"kind": "operator", "sort": <string>, "name": <string>,
//	 "arguments": [<term-ast>, ...]?, "index": <value>?}
//	{"kind": "binder", "bindings": {<name>: <sort>, ...}, "scope": <term-ast>}
func Compile(ast value.Value) (Term, error) {
	src, ok := ast.(value.Object)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "term is not an object"),
			slog.String("type", kindOf(ast)),
		)
	}

	kind, err := stringField(src, "kind")
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindVariable:
		return compileVariable(src)
	case KindOperator:
		return compileOperator(src)
	case KindBinder:
		return compileBinder(src)
	default:
		return nil, ErrUnknownKind.With(slog.String("kind", kind))
	}
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(ast value.Value) Term {
	t, err := Compile(ast)
	if err != nil {
		panic(err)
	}

	return t
}

func compileVariable(src value.Object) (Term, error) {
	sort, err := stringField(src, "sort")
	if err != nil {
		return nil, err
	}

	name, err := stringField(src, "name")
	if err != nil {
		return nil, err
	}

	return Variable{sort: sort, name: name}, nil
}

func compileOperator(src value.Object) (Term, error) {
	sort, err := stringField(src, "sort")
	if err != nil {
		return nil, err
	}

	name, err := stringField(src, "name")
	if err != nil {
		return nil, err
	}

	o := Operator{sort: sort, name: name}

	if index, ok := src.Get("index"); ok {
		o.index = index
	}

	av, ok := src.Get("arguments")
	if !ok {
		return o, nil
	}

	args, ok := av.(value.Array)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "arguments is not an array"),
			slog.String("operator", name),
			slog.String("type", kindOf(av)),
		)
	}

	o.args = make([]Term, 0, args.Len())

	for i, sub := range args.All() {
		arg, err := Compile(sub)
		if err != nil {
			return nil, pkg.WrapError(err).With(
				slog.String("operator", name),
				slog.Int("argument", i),
			)
		}

		o.args = append(o.args, arg)
	}

	return o, nil
}

func compileBinder(src value.Object) (Term, error) {
	bv, ok := src.Get("bindings")
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "missing field"),
			slog.String("field", "bindings"),
		)
	}

	bo, ok := bv.(value.Object)
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "bindings is not an object"),
			slog.String("type", kindOf(bv)),
		)
	}

	bindings := make(Sorts, bo.Len())

	for name, sv := range bo.All() {
		sort, ok := sv.(value.String)
		if !ok {
			return nil, ErrMalformed.With(
				slog.String("issue", "binding sort is not a string"),
				slog.String("binding", name),
				slog.String("type", kindOf(sv)),
			)
		}

		bindings[name] = string(sort)
	}

	sv, ok := src.Get("scope")
	if !ok {
		return nil, ErrMalformed.With(
			slog.String("issue", "missing field"),
			slog.String("field", "scope"),
		)
	}

	scope, err := Compile(sv)
	if err != nil {
		return nil, err
	}

	return Binder{bindings: bindings, scope: scope}, nil
}

// AST returns the source AST of t. Compiling the result yields a term equal
// to t.
func AST(t Term) value.Object {
	kind := func(k string) value.Member {
		return value.Member{Name: "kind", Value: value.String(k)}
	}

	switch x := t.(type) {
	case Variable:
		return value.NewObject(
			kind(KindVariable),
			value.Member{Name: "sort", Value: value.String(x.sort)},
			value.Member{Name: "name", Value: value.String(x.name)},
		)

	case Operator:
		m := []value.Member{
			kind(KindOperator),
			{Name: "sort", Value: value.String(x.sort)},
			{Name: "name", Value: value.String(x.name)},
		}

		if len(x.args) > 0 {
			args := make([]value.Value, len(x.args))
			for i, arg := range x.args {
				args[i] = AST(arg)
			}

			m = append(m, value.Member{Name: "arguments", Value: value.NewArray(args...)})
		}

		if x.index != nil {
			m = append(m, value.Member{Name: "index", Value: x.index})
		}

		return value.NewObject(m...)

	case Binder:
		bindings := make([]value.Member, 0, len(x.bindings))
		for _, name := range x.bindings.Names() {
			bindings = append(bindings, value.Member{
				Name:  name,
				Value: value.String(x.bindings[name]),
			})
		}

		var scope value.Value = value.Null{}
		if x.scope != nil {
			scope = AST(x.scope)
		}

		return value.NewObject(
			kind(KindBinder),
			value.Member{Name: "bindings", Value: value.NewObject(bindings...)},
			value.Member{Name: "scope", Value: scope},
		)

	default:
		return value.Object{}
	}
}

func stringField(src value.Object, name string) (string, error) {
	v, ok := src.Get(name)
	if !ok {
		return "", ErrMalformed.With(
			slog.String("issue", "missing field"),
			slog.String("field", name),
		)
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

func kindOf(v value.Value) string {
	if v == nil {
		return "nil"
	}

	return v.Kind().String()
}
