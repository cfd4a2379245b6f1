package repl

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/value"
)

// arrayPrefix marks match input that is decoded as an array.
const arrayPrefix = "="

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.matchText = ""
	m.matchCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")

	_, _ = m.history.WriteWithMode(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl match",
		slog.String("rule", m.rule),
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	out, err := matchInput(m.grammar, m.rule, input)
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echoCmd, tea.Println(out))
}

// matchInput matches input against rule and describes the outcome.
func matchInput(g *peg.Grammar, rule, input string) (string, error) {
	var in value.Sequence = value.String(input)

	if src, ok := strings.CutPrefix(input, arrayPrefix); ok {
		v, err := value.Decode([]byte(src))
		if err != nil {
			return "", err
		}

		arr, ok := v.(value.Array)
		if !ok {
			return "", ErrNotArray.With(slog.String("kind", v.Kind().String()))
		}

		in = arr
	}

	r, ok := g.Match(rule, in)
	if !ok {
		return errorStyle.Render("✘ no match"), nil
	}

	return describe(in, r), nil
}

// describe renders a successful match: what was consumed, the remainder and
// the match values.
func describe(in value.Sequence, r peg.Result) string {
	consumed := in.Slice(0, in.Len()-r.Remainder.Len())

	var b strings.Builder

	b.WriteString(resultStyle.Render("✔ " + value.Format(consumed)))
	b.WriteString(hintStyle.Render(" rest "))
	b.WriteString(value.Format(r.Remainder))
	b.WriteString(hintStyle.Render(" value "))
	b.WriteString(value.Format(r.Values))

	return b.String()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	cmd := parts[0]
	args := parts[1:]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "r", "rules":
		return m, tea.Sequence(echoCmd, tea.Println(listRules(m.grammar, m.rule)))

	case "rule":
		if len(args) != 1 {
			return m, tea.Sequence(echoCmd, tea.Println(hintStyle.Render("current rule: "+m.rule)))
		}

		if _, ok := m.grammar.Rule(args[0]); !ok {
			return m, tea.Sequence(echoCmd, tea.Println(
				errorStyle.Render("Unknown rule: "+args[0]+" (try 'rules')"),
			))
		}

		m.rule = args[0]

		return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render("✔ matching "+m.rule)))

	case "g", "grammar":
		return m, tea.Sequence(echoCmd, tea.Println(strings.TrimSuffix(m.grammar.String(), "\n")))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// listRules lists the rules of g with a preview of each pattern, marking the
// current rule.
func listRules(g *peg.Grammar, current string) string {
	var b strings.Builder

	for _, name := range g.Names() {
		p, _ := g.Pattern(name)

		mark := " "
		if name == current {
			mark = "*"
		}

		fmt.Fprintf(&b, "%s %s %s\n", mark, name, hintStyle.Render(preview(p.String())))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

const previewWidth = 40

func preview(s string) string {
	if r := []rune(s); len(r) > previewWidth {
		return string(r[:previewWidth-3]) + "..."
	}

	return s
}
