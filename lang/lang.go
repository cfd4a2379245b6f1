package lang

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/organix/crlf/calc"
	"github.com/organix/crlf/log"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/term"
	"github.com/organix/crlf/value"
)

// Names of the languages registered in every registry made by [NewDefault].
const (
	PEG  = "PEG"
	Term = "term"
	Expr = "expr"
)

// Compiler turns the AST of one language into the live value it describes.
type Compiler func(ast value.Value) (any, error)

// Registry maps language names to their compilers. A Registry is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	compilers map[string]Compiler
	cache     sync.Map
	logger    log.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the logger that traces compilation.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Default is the registry used by the package-level functions. It knows the
// languages [PEG], [Term] and [Expr].
var Default = NewDefault()

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{compilers: make(map[string]Compiler)}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// NewDefault returns a registry with the built-in languages registered:
//
//   - [PEG] compiles a grammar with [peg.Compile] to a *[peg.Grammar]
//   - [Term] compiles a term with [term.Compile] to a [term.Term]
//   - [Expr] compiles an expression with [calc.Compile] to a
//     *[calc.Expression]
func NewDefault(opts ...Option) *Registry {
	r := NewRegistry(opts...)

	r.Register(PEG, func(ast value.Value) (any, error) {
		return peg.Compile(ast, peg.WithLogger(r.logger))
	})
	r.Register(Term, func(ast value.Value) (any, error) {
		return term.Compile(ast)
	})
	r.Register(Expr, func(ast value.Value) (any, error) {
		return calc.Compile(ast, calc.WithLogger(r.logger))
	})

	return r
}

// Register binds name to c, replacing any compiler already bound to it.
// Compilations cached by [Registry.CompileCached] are discarded.
func (r *Registry) Register(name string, c Compiler) {
	r.mu.Lock()
	r.compilers[name] = c
	r.mu.Unlock()

	r.ClearCache()
}

// Lookup returns the compiler bound to name.
func (r *Registry) Lookup(name string) (Compiler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.compilers[name]

	return c, ok
}

// Names returns the registered language names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.compilers))
}

// Compile compiles a source of the form
//
//	{"lang": <string>, "ast": <value>}
//
// with the compiler registered for lang, and returns the compiled value.
func (r *Registry) Compile(source value.Value) (any, error) {
	name, ast, err := split(source)
	if err != nil {
		return nil, err
	}

	c, ok := r.Lookup(name)
	if !ok {
		return nil, ErrUnknownLanguage.With(
			slog.String("lang", name),
			slog.Any("known", r.Names()),
		)
	}

	out, err := c(ast)
	if err != nil {
		return nil, err
	}

	r.logger.Trace("source compiled", slog.String("lang", name))

	return out, nil
}

// MustCompile is like [Registry.Compile] but panics on error.
func (r *Registry) MustCompile(source value.Value) any {
	out, err := r.Compile(source)
	if err != nil {
		panic(err)
	}

	return out
}

func split(source value.Value) (string, value.Value, error) {
	obj, ok := source.(value.Object)
	if !ok {
		return "", nil, ErrMalformedSource.With(
			slog.String("issue", "source is not an object"),
		)
	}

	lv, ok := obj.Get("lang")
	if !ok {
		return "", nil, ErrMalformedSource.With(slog.String("issue", "missing lang"))
	}

	name, ok := lv.(value.String)
	if !ok {
		return "", nil, ErrMalformedSource.With(
			slog.String("issue", "lang is not a string"),
			slog.String("kind", lv.Kind().String()),
		)
	}

	ast, ok := obj.Get("ast")
	if !ok {
		return "", nil, ErrMalformedSource.With(
			slog.String("issue", "missing ast"),
			slog.String("lang", string(name)),
		)
	}

	return string(name), ast, nil
}

// Compile compiles source with the [Default] registry.
func Compile(source value.Value) (any, error) { return Default.Compile(source) }

// MustCompile is like [Compile] but panics on error.
func MustCompile(source value.Value) any { return Default.MustCompile(source) }

// Register binds name to c in the [Default] registry.
func Register(name string, c Compiler) { Default.Register(name, c) }
