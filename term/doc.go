// Package term implements abstract binding trees: terms built from sorted
// variables, operators and binders, as used to describe the syntax of
// formal calculi.
//
// Terms are compiled from structured data with [Compile] and are
// immutable. [FreeVariables] reports the variables a term leaves unbound,
// and [Substitute] replaces the free occurrences of a variable. Plain
// substitution never renames bound variables; [SubstituteAvoiding] does,
// so that a replacement's free variables are never captured.
package term
