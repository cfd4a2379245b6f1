// Package calc compiles and evaluates embedded expressions.
//
// Expressions are written in the expr language
// (https://expr-lang.org) and described as structured data:
//
//	{"kind": "expression", "source": "x * 2 + 1", "env": {"x": 20}}
//
// The values in env declare the variables an expression expects and serve
// as defaults; [Expression.Evaluate] binds new values over them. Results
// are converted back into [value.Value]s.
//
// Grammars compiled by package peg can be made available to an expression,
// either embedded in the AST under "grammars" or with [WithGrammar], and
// are applied with the match function:
//
//	match("numbers", "integer", "123abc").remainder == "abc"
package calc
