// Package lang is the language factory: a registry that maps language names
// to compilers, and compiles tagged sources of the form
//
//	{"lang": "PEG", "ast": {"kind": "grammar", "rules": {...}}}
//
// into the live values they describe. [NewDefault] registers the built-in
// languages:
//
//	PEG   → *peg.Grammar
//	term  → term.Term
//	expr  → *calc.Expression
//
// Adding a language means registering one more [Compiler]; the existing
// compilers are not touched.
//
// Sources are plain structured data. [Decode] reads one from a JSON or YAML
// document, and [Registry.CompileCached] memoizes compilations so that a
// source read repeatedly is compiled once.
package lang
