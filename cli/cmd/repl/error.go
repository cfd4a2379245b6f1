package repl

import "github.com/organix/crlf/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrNoRules     = pkg.NewError("grammar has no rules")
	ErrNotArray    = pkg.NewError("input is not an array")
)
