package lang

import "github.com/organix/crlf/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownLanguage = pkg.NewError("unknown language")
	ErrMalformedSource = pkg.NewError("malformed source")
	ErrReadInput       = pkg.NewError("failed to read input")
	ErrUnexpectedType  = pkg.NewError("unexpected compiled type")
)
