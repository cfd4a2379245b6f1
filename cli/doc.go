// Package cli contains the command line interface for crlf.
//
// # Usage
//
// Each command reads a source document, JSON or YAML, from a file or stdin:
//
//	crlf match grammar.yaml number 2024-10
//	crlf repl grammar.yaml --rule number
//	crlf fv term.yaml
//	crlf subst term.yaml x replacement.json --avoid
//	crlf eval expr.yaml x=41
//	crlf fmt yaml source.json
//	crlf fmt notation grammar.yaml
//
// A source is either tagged with its language:
//
//	{"lang": "PEG", "ast": {"kind": "grammar", "rules": {...}}}
//
// or a bare AST, whose language follows from its kind.
//
// # Configuration
//
// Flag defaults are read from the "config" mapping of config.yaml (or
// config.json) in the user configuration directory. The init command writes
// that file from the current flag values:
//
//	config:
//	  log-level: debug
//	  log-format: json
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o crlf .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/crlf/pprof)
package cli
