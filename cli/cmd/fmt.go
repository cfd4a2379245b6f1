package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/organix/crlf/calc"
	"github.com/organix/crlf/lang"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/term"
)

// Fmt re-encodes a source document in the chosen format.
type Fmt struct {
	JSON     JSON     `cmd:"" default:"withargs" help:"Format as JSON (default)."`
	YAML     YAML     `cmd:""                    help:"Format as YAML."`
	Notation Notation `cmd:""                    help:"Compile the source and print it in notation."`
}

// JSON formats a source as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context, w io.Writer) error {
	src, err := decode(ctx, j.Source)
	if err != nil {
		return err
	}

	return Output{Format: "json", Indent: j.Indent}.write(ctx, w, src)
}

// YAML formats a source as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context, w io.Writer) error {
	src, err := decode(ctx, y.Source)
	if err != nil {
		return err
	}

	return Output{Format: "yaml", Indent: y.Indent}.write(ctx, w, src)
}

// Notation prints a compiled source in its conventional notation: a grammar
// in PEG notation, a term as an ABT, an expression as its source text.
type Notation struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the notation command.
func (n *Notation) Run(ctx context.Context, w io.Writer) error {
	src, err := decode(ctx, n.Source)
	if err != nil {
		return err
	}

	out, err := lang.CompileCached(ctx, tagged(src))
	if err != nil {
		return err
	}

	var text string

	switch x := out.(type) {
	case *peg.Grammar:
		text = x.String()
	case term.Term:
		text = x.String() + "\n"
	case *calc.Expression:
		text = x.Source() + "\n"
	case fmt.Stringer:
		text = x.String() + "\n"
	default:
		return lang.ErrUnexpectedType.With(slog.String("type", fmt.Sprintf("%T", out)))
	}

	if _, err := io.WriteString(w, text); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}
