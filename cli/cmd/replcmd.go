package cmd

import (
	"context"

	"github.com/organix/crlf/cli/cmd/repl"
	"github.com/organix/crlf/log"
	"github.com/organix/crlf/peg"
)

// Repl matches input against a grammar interactively.
type Repl struct {
	Source string `arg:"" help:"Grammar source file." name:"source" type:"existingfile"`
	Rule   string `       help:"Rule to match (default: first rule)." short:"r"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	g, err := compile[*peg.Grammar](ctx, r.Source)
	if err != nil {
		return err
	}

	var history string
	if ktx := kongContextFrom(ctx); ktx != nil {
		history = ktx.Model.Vars()[HistoryIdentifier]
	}

	return repl.Run(ctx, g, r.Rule, history, log.Default())
}
