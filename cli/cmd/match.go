package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/value"
)

// Match matches input against a rule of a grammar.
type Match struct {
	Output `embed:""`

	Source    string `arg:"" help:"Grammar source file or '-' for stdin." name:"source"`
	Rule      string `arg:"" help:"Rule to match."                       name:"rule"`
	Input     string `arg:"" help:"Input text."                          name:"input" optional:""`
	InputFile string `       help:"Read input from a file ('-' for stdin)." short:"f"`
	Array     bool   `       help:"Decode the input as a JSON or YAML array."  short:"a"`
}

// Run executes the match command. The result object, or false, is written
// to w.
func (m *Match) Run(ctx context.Context, w io.Writer) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g, err := compile[*peg.Grammar](ctx, m.Source)
	if err != nil {
		return err
	}

	if _, ok := g.Rule(m.Rule); !ok {
		return peg.ErrUndefinedRule.With(
			slog.String("rule", m.Rule),
			slog.Any("rules", g.Names()),
		)
	}

	in, err := m.input()
	if err != nil {
		return err
	}

	r, ok := g.Match(m.Rule, in)

	log.DebugContext(ctx, "match",
		slog.String("rule", m.Rule),
		slog.Int("input_length", in.Len()),
		slog.Bool("ok", ok),
	)

	return m.write(ctx, w, peg.Outcome(r, ok))
}

func (m *Match) input() (value.Sequence, error) {
	text := m.Input

	if m.InputFile != "" {
		r, err := open(m.InputFile)
		if err != nil {
			return nil, err
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return nil, ErrInput.Wrap(err).With(slog.String("file", m.InputFile))
		}

		text = string(data)
	}

	if !m.Array {
		return value.String(text), nil
	}

	v, err := value.Decode([]byte(text))
	if err != nil {
		return nil, ErrInput.Wrap(err)
	}

	arr, ok := v.(value.Array)
	if !ok {
		return nil, ErrInput.With(
			slog.String("issue", "input is not an array"),
			slog.String("kind", v.Kind().String()),
		)
	}

	return arr, nil
}
