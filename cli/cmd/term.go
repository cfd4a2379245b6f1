package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/term"
	"github.com/organix/crlf/value"
)

// Fv lists the free variables of a term.
type Fv struct {
	Output `embed:""`

	Source string `arg:"" default:"-" help:"Term source file or '-' for stdin." name:"source"`
}

// Run executes the fv command. The free variables are written to w as an
// object mapping each name to its sort.
func (f *Fv) Run(ctx context.Context, w io.Writer) error {
	t, err := compile[term.Term](ctx, f.Source)
	if err != nil {
		return err
	}

	fv := term.FreeVariables(t)

	members := make([]value.Member, 0, len(fv))
	for _, name := range fv.Names() {
		members = append(members, value.Member{Name: name, Value: value.String(fv[name])})
	}

	return f.write(ctx, w, value.NewObject(members...))
}

// Subst substitutes a term for the free occurrences of a variable.
type Subst struct {
	Output `embed:""`

	Source      string `arg:"" help:"Term source file or '-' for stdin."   name:"source"`
	Name        string `arg:"" help:"Variable to replace."                  name:"name"`
	Replacement string `arg:"" help:"Replacement term source file."         name:"replacement" type:"existingfile"`
	Avoid       bool   `       help:"Rename bound variables that would capture the replacement's free variables."`
	AST         bool   `       help:"Write the result as an AST instead of in notation." name:"ast"`
}

// Run executes the subst command.
func (s *Subst) Run(ctx context.Context, w io.Writer) error {
	t, err := compile[term.Term](ctx, s.Source)
	if err != nil {
		return err
	}

	r, err := compile[term.Term](ctx, s.Replacement)
	if err != nil {
		return err
	}

	substitute := term.Substitute
	if s.Avoid {
		substitute = term.SubstituteAvoiding
	}

	out, err := substitute(t, s.Name, r)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "substitute",
		slog.String("name", s.Name),
		slog.Bool("avoid", s.Avoid),
		slog.String("result", out.String()),
	)

	if s.AST {
		return s.write(ctx, w, term.AST(out))
	}

	_, err = fmt.Fprintln(w, out)
	if err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}
