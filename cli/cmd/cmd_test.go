package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/organix/crlf/lang"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/term"
	"github.com/organix/crlf/value"
)

const grammarSource = `
lang: PEG
ast:
  kind: grammar
  rules:
    digit: {kind: range, from: 48, to: 57}
    integer: {kind: plus, expr: {kind: rule, name: digit}}
`

const termSource = `
kind: operator
sort: Exp
name: plus
arguments:
  - {kind: variable, sort: Exp, name: x}
  - {kind: operator, sort: Exp, name: num, index: 1}
`

const binderSource = `
kind: binder
bindings: {y: Exp}
scope:
  kind: operator
  sort: Exp
  name: plus
  arguments:
    - {kind: variable, sort: Exp, name: x}
    - {kind: variable, sort: Exp, name: y}
`

const replacementSource = `{"kind": "variable", "sort": "Exp", "name": "y"}`

const exprSource = `{"kind": "expression", "source": "x + 1", "env": {"x": 1}}`

// writeFile writes content to a new file in a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestTagged(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"grammar", `{"kind": "grammar", "rules": {}}`, lang.PEG},
		{"expression", exprSource, lang.Expr},
		{"term", replacementSource, lang.Term},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := value.MustDecode(tt.src)
			got := tagged(src).(value.Object)

			if l, _ := got.Get("lang"); !value.Equal(l, value.String(tt.want)) {
				t.Errorf("lang = %v, want %q", l, tt.want)
			}

			if ast, _ := got.Get("ast"); !value.Equal(ast, src) {
				t.Errorf("ast = %s", value.Format(ast))
			}
		})
	}

	src := value.MustDecode(grammarSource)
	if got := tagged(src); !value.Equal(got, src) {
		t.Errorf("tagged source changed: %s", value.Format(got))
	}
}

func TestOutput_Write(t *testing.T) {
	v := value.MustDecode(`{"b": [1, 2], "a": "x"}`)

	tests := []struct {
		name string
		out  Output
		want string
	}{
		{"json", Output{Format: "json"}, `{"b":[1,2],"a":"x"}` + "\n"},
		{"json_indent", Output{Format: "json", Indent: 1}, "{\n \"b\": [\n  1,\n  2\n ],\n \"a\": \"x\"\n}\n"},
		{"yaml", Output{Format: "yaml", Indent: 2}, "b:\n- 1\n- 2\na: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.out.write(context.Background(), &buf, v); err != nil {
				t.Fatal(err)
			}

			got := buf.String()
			if tt.out.Format == "yaml" {
				// Round-trip instead of comparing layout.
				if d := value.MustDecode(got); !value.Equal(d, v) {
					t.Errorf("write = %q", got)
				}

				return
			}

			if got != tt.want {
				t.Errorf("write = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	src := writeFile(t, "grammar.yaml", grammarSource)

	tests := []struct {
		name  string
		match Match
		want  string
	}{
		{
			"prefix",
			Match{Source: src, Rule: "integer", Input: "42x"},
			`{"value":[52,50],"remainder":"x"}`,
		},
		{
			"no_match",
			Match{Source: src, Rule: "integer", Input: "x"},
			`false`,
		},
		{
			"array",
			Match{Source: src, Rule: "digit", Input: "[55, 1]", Array: true},
			`{"value":[55],"remainder":[1]}`,
		},
		{
			"input_file",
			Match{Source: src, Rule: "integer", InputFile: writeFile(t, "input.txt", "7")},
			`{"value":[55],"remainder":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.match.Run(context.Background(), &buf); err != nil {
				t.Fatal(err)
			}

			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("match = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMatch_Errors(t *testing.T) {
	src := writeFile(t, "grammar.yaml", grammarSource)

	tests := []struct {
		name  string
		match Match
		want  error
	}{
		{"undefined_rule", Match{Source: src, Rule: "nope"}, peg.ErrUndefinedRule},
		{"missing_source", Match{Source: filepath.Join(t.TempDir(), "none"), Rule: "digit"}, ErrOpenSource},
		{"not_array", Match{Source: src, Rule: "digit", Input: "{a: 1}", Array: true}, ErrInput},
		{"not_grammar", Match{Source: writeFile(t, "term.yaml", termSource), Rule: "digit"}, lang.ErrUnexpectedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.match.Run(context.Background(), &bytes.Buffer{}); !errors.Is(err, tt.want) {
				t.Errorf("Run error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFv(t *testing.T) {
	var buf bytes.Buffer

	fv := Fv{Output: Output{Format: "json"}, Source: writeFile(t, "term.yaml", binderSource)}
	if err := fv.Run(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), `{"x":"Exp"}`+"\n"; got != want {
		t.Errorf("fv = %q, want %q", got, want)
	}
}

func TestSubst(t *testing.T) {
	src := writeFile(t, "term.yaml", binderSource)
	repl := writeFile(t, "repl.json", replacementSource)

	tests := []struct {
		name  string
		avoid bool
		want  string
	}{
		{"capture", false, "{y:Exp}.plus(y:Exp, y:Exp)"},
		{"avoid", true, "{y':Exp}.plus(y:Exp, y':Exp)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			s := Subst{Source: src, Name: "x", Replacement: repl, Avoid: tt.avoid}
			if err := s.Run(context.Background(), &buf); err != nil {
				t.Fatal(err)
			}

			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("subst = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSubst_AST(t *testing.T) {
	var buf bytes.Buffer

	s := Subst{
		Output:      Output{Format: "json"},
		Source:      writeFile(t, "term.yaml", termSource),
		Name:        "x",
		Replacement: writeFile(t, "repl.json", replacementSource),
		AST:         true,
	}
	if err := s.Run(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	got, err := term.Compile(value.MustDecode(buf.String()))
	if err != nil {
		t.Fatal(err)
	}

	if got.String() != "plus(y:Exp, num[1])" {
		t.Errorf("subst = %v", got)
	}
}

func TestEval(t *testing.T) {
	src := writeFile(t, "expr.json", exprSource)

	tests := []struct {
		name     string
		bindings []string
		want     string
	}{
		{"defaults", nil, "2"},
		{"binding", []string{"x=41"}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			e := Eval{Output: Output{Format: "json"}, Source: src, Bindings: tt.bindings}
			if err := e.Run(context.Background(), &buf); err != nil {
				t.Fatal(err)
			}

			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("eval = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBind(t *testing.T) {
	env, err := bind([]string{"n=3", "s=hello", "a=[1, 2]", "e=", "q=a=b"})
	if err != nil {
		t.Fatal(err)
	}

	want := value.NewObject(
		value.Member{Name: "n", Value: value.Number(3)},
		value.Member{Name: "s", Value: value.String("hello")},
		value.Member{Name: "a", Value: value.NewArray(value.Number(1), value.Number(2))},
		value.Member{Name: "e", Value: value.String("")},
		value.Member{Name: "q", Value: value.String("a=b")},
	)

	if !value.Equal(env, want) {
		t.Errorf("bind = %s, want %s", value.Format(env), value.Format(want))
	}

	for _, pair := range []string{"x", "=1"} {
		if _, err := bind([]string{pair}); !errors.Is(err, ErrBinding) {
			t.Errorf("bind(%q) error = %v, want %v", pair, err, ErrBinding)
		}
	}
}

func TestFmt(t *testing.T) {
	ctx := context.Background()
	src := writeFile(t, "src.yaml", "{b: 1, a: [true]}\n")

	var buf bytes.Buffer

	if err := (&JSON{Indent: 2, Source: src}).Run(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("json = %q, want %q", got, want)
	}

	buf.Reset()

	if err := (&YAML{Indent: 2, Source: src}).Run(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	if !value.Equal(value.MustDecode(buf.String()), value.MustDecode(want)) {
		t.Errorf("yaml = %q", buf.String())
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"term", termSource, "plus(x:Exp, num[1])\n"},
		{"expression", exprSource, "x + 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			n := Notation{Source: writeFile(t, "src.yaml", tt.src)}
			if err := n.Run(context.Background(), &buf); err != nil {
				t.Fatal(err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("notation = %q, want %q", got, tt.want)
			}
		})
	}

	var buf bytes.Buffer

	n := Notation{Source: writeFile(t, "grammar.yaml", grammarSource)}
	if err := n.Run(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	g := lang.MustCompile(value.MustDecode(grammarSource)).(*peg.Grammar)
	if got := buf.String(); got != g.String() {
		t.Errorf("notation = %q, want %q", got, g.String())
	}
}
