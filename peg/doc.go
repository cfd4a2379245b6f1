// Package peg compiles and runs parsing expression grammars.
//
// A grammar is described as structured data:
//
//	{"kind": "grammar", "rules": {
//	  "digit0":   {"kind": "terminal", "value": 48},
//	  "digit1_9": {"kind": "range", "from": 49, "to": 57},
//	  "digit0_9": {"kind": "alternative", "of": [
//	    {"kind": "rule", "name": "digit0"},
//	    {"kind": "rule", "name": "digit1_9"}]},
//	  "integer":  {"kind": "alternative", "of": [
//	    {"kind": "rule", "name": "digit0"},
//	    {"kind": "sequence", "of": [
//	      {"kind": "rule", "name": "digit1_9"},
//	      {"kind": "star", "expr": {"kind": "rule", "name": "digit0_9"}}]}]}}}
//
// [Compile] turns that description into a [Grammar]. Matching runs against
// a [value.Sequence]: a [value.String], whose elements are code points, or
// a [value.Array] of tokens. Choice is ordered and the first alternative
// that matches wins. A match either succeeds with the flat array of matched
// elements and the unconsumed remainder, or fails; failing is not an error.
//
// Grammars are checked when compiled. References to undefined rules and
// left-recursive rules are rejected, so matching always terminates.
package peg
