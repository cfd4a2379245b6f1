package lang_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/organix/crlf/lang"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/value"
)

func Example() {
	src, err := lang.Decode(context.Background(), strings.NewReader(`
lang: PEG
ast:
  kind: grammar
  rules:
    digit: {kind: range, from: 48, to: 57}
    number: {kind: plus, expr: {kind: rule, name: digit}}
`))
	if err != nil {
		panic(err)
	}

	out, err := lang.Compile(src)
	if err != nil {
		panic(err)
	}

	g := out.(*peg.Grammar)
	fmt.Println(value.Format(peg.Outcome(g.Match("number", value.String("2024-10")))))
	fmt.Println(value.Format(peg.Outcome(g.Match("number", value.String("-1")))))

	// Output:
	// {"value":[50,48,50,52],"remainder":"-10"}
	// false
}
