package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/organix/crlf/calc"
	"github.com/organix/crlf/log"
	"github.com/organix/crlf/value"
)

// Eval evaluates an expression with the given bindings.
type Eval struct {
	Output `embed:""`

	Source   string   `arg:"" help:"Expression source file or '-' for stdin." name:"source"`
	Bindings []string `arg:"" help:"Bindings of the form name=value; values are read as JSON or YAML." name:"bindings" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, w io.Writer) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	x, err := compile[*calc.Expression](ctx, e.Source)
	if err != nil {
		return err
	}

	env, err := bind(e.Bindings)
	if err != nil {
		return err
	}

	result, err := x.Evaluate(env)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "evaluate",
		slog.String("source", x.Source()),
		slog.Any("bindings", env.Names()),
	)

	return e.write(ctx, w, result)
}

// bind parses name=value pairs into an environment. A value that does not
// decode is bound as a string.
func bind(pairs []string) (value.Object, error) {
	members := make([]value.Member, 0, len(pairs))

	for _, pair := range pairs {
		name, text, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return value.Object{}, ErrBinding.With(slog.String("binding", pair))
		}

		var v value.Value = value.String(text)

		if strings.TrimSpace(text) != "" {
			if d, err := value.Decode([]byte(text)); err == nil {
				v = d
			}
		}

		members = append(members, value.Member{Name: name, Value: v})
	}

	return value.NewObject(members...), nil
}
