package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/organix/crlf/lang"
	"github.com/organix/crlf/value"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// open opens the source at path, or stdin for "-".
func open(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("file", path))
	}

	return file, nil
}

// decode reads and decodes the JSON or YAML document at path.
func decode(ctx context.Context, path string) (value.Value, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	v, err := lang.Decode(ctx, r)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("file", path))
	}

	return v, nil
}

// tagged returns src as a factory source. A bare AST is tagged with the
// language implied by its kind.
func tagged(src value.Value) value.Value {
	obj, ok := src.(value.Object)
	if !ok || obj.Has("lang") {
		return src
	}

	name := lang.Term

	switch kind, _ := obj.Get("kind"); kind {
	case value.String("grammar"):
		name = lang.PEG
	case value.String("expression"):
		name = lang.Expr
	}

	return value.NewObject(
		value.Member{Name: "lang", Value: value.String(name)},
		value.Member{Name: "ast", Value: src},
	)
}

// compile decodes the source at path and compiles it to a T with the
// default language registry.
func compile[T any](ctx context.Context, path string) (T, error) {
	src, err := decode(ctx, path)
	if err != nil {
		var zero T

		return zero, err
	}

	return lang.As[T](ctx, tagged(src))
}

// Output selects how results are written.
type Output struct {
	Format string `default:"json" enum:"json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"0"                     help:"Indent width; 0 writes compact JSON or flow YAML." short:"i"`
}

func (o Output) write(ctx context.Context, w io.Writer, v value.Value) error {
	var err error

	switch o.Format {
	case "yaml":
		err = value.WriteYAML(ctx, w, v, o.Indent)
	default:
		err = value.WriteJSON(ctx, w, v, o.Indent)
	}

	if err != nil {
		return ErrWrite.Wrap(err).With(slog.String("format", o.Format))
	}

	return nil
}
