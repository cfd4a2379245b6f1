package cmd

import "github.com/organix/crlf/pkg"

var (
	ErrOpenSource  = pkg.NewError("read source")
	ErrInput       = pkg.NewError("invalid input")
	ErrBinding     = pkg.NewError("invalid binding (want name=value)")
	ErrWrite       = pkg.NewError("write output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
