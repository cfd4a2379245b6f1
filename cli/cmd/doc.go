// Package cmd implements the crlf subcommands: matching grammars,
// manipulating terms, evaluating expressions and formatting sources.
package cmd

var (
	// HistoryIdentifier is the kong variable identifier containing the path
	// to the REPL history file.
	HistoryIdentifier = "history"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It also names the configuration namespace
	// within that file.
	ConfigIdentifier = "config"
)
