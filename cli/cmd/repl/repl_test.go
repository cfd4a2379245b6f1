package repl

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/organix/crlf/log"
	"github.com/organix/crlf/peg"
	"github.com/organix/crlf/value"
)

const testGrammar = `{
  "kind": "grammar",
  "rules": {
    "integer": {"kind": "plus", "expr": {"kind": "rule", "name": "digit"}},
    "digit":   {"kind": "range", "from": 48, "to": 57},
    "sign":    {"kind": "alternative", "of": [
      {"kind": "terminal", "value": 43},
      {"kind": "terminal", "value": 45}
    ]}
  }
}`

func testModel(t *testing.T) model {
	t.Helper()

	g := peg.MustCompile(value.MustDecode(testGrammar))
	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	return newModel(context.Background(), g, "integer", h, log.Logger{})
}

func update(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)

	return next.(model)
}

func typeText(m model, s string) model {
	for _, r := range s {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func TestMatchInput(t *testing.T) {
	g := peg.MustCompile(value.MustDecode(testGrammar))

	tests := []struct {
		name  string
		rule  string
		input string
		want  []string
	}{
		{"prefix", "integer", "12ab", []string{`"12"`, `"ab"`, `[49,50]`}},
		{"whole", "integer", "7", []string{`"7"`, `""`, `[55]`}},
		{"no_match", "integer", "ab", []string{"no match"}},
		{"array", "digit", "=[48, 1]", []string{`[48]`, `[1]`}},
		{"sign_array", "sign", "=[45]", []string{`[45]`, `[]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := matchInput(g, tt.rule, tt.input)
			if err != nil {
				t.Fatal(err)
			}

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("matchInput(%q) = %q, missing %q", tt.input, out, want)
				}
			}
		})
	}
}

func TestMatchInput_Errors(t *testing.T) {
	g := peg.MustCompile(value.MustDecode(testGrammar))

	if _, err := matchInput(g, "integer", `={"a": 1}`); !errors.Is(err, ErrNotArray) {
		t.Errorf("object input error = %v, want %v", err, ErrNotArray)
	}

	if _, err := matchInput(g, "integer", `=[1,`); err == nil {
		t.Error("malformed array input did not fail")
	}
}

func TestListRules(t *testing.T) {
	g := peg.MustCompile(value.MustDecode(testGrammar))
	out := listRules(g, "digit")

	lines := strings.Split(out, "\n")
	if len(lines) != g.Len() {
		t.Fatalf("listRules has %d lines, want %d:\n%s", len(lines), g.Len(), out)
	}

	for _, line := range lines {
		current := strings.HasPrefix(line, "*")
		if current != strings.Contains(line, " digit ") {
			t.Errorf("wrong current marker in %q", line)
		}
	}

	if !strings.Contains(out, "[0-9]") {
		t.Errorf("listRules lacks pattern previews:\n%s", out)
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short"); got != "short" {
		t.Errorf("preview = %q", got)
	}

	long := strings.Repeat("x", previewWidth+5)
	if got := preview(long); len([]rune(got)) != previewWidth || !strings.HasSuffix(got, "...") {
		t.Errorf("preview = %q", got)
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := testModel(t)
	m = typeText(m, "123")

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after Esc: mode %v input %q", m.mode, m.input.Value())
	}

	m = typeText(m, "gr")
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeMatch || m.input.Value() != "123" {
		t.Errorf("after second Esc: mode %v input %q", m.mode, m.input.Value())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "gr" {
		t.Errorf("command input not restored: %q", m.input.Value())
	}
}

func TestModel_Completion(t *testing.T) {
	m := testModel(t)
	m = typeText(m, "12")

	if len(m.matches) != 0 {
		t.Errorf("match mode offered completions: %v", m.matches)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = typeText(m, "gra")

	if len(m.matches) != 1 || m.matches[0].Str != "grammar" {
		t.Fatalf("matches for %q = %v", "gra", m.matches)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "grammar" {
		t.Errorf("Tab completed to %q", m.input.Value())
	}
}

func TestModel_TabCycle(t *testing.T) {
	m := testModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = typeText(m, "rule ")

	if len(m.matches) != 3 {
		t.Fatalf("matches after %q = %v", "rule ", m.matches)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	first := m.input.Value()

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	second := m.input.Value()

	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})

	if first == second || m.input.Value() != first {
		t.Errorf("cycle: %q, %q, back to %q", first, second, m.input.Value())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "rule " || m.tabActive {
		t.Errorf("Esc did not restore the pre-tab input: %q", m.input.Value())
	}
}

func TestModel_RuleCommand(t *testing.T) {
	m := testModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = typeText(m, "rule sign")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.rule != "sign" {
		t.Errorf("rule = %q, want sign", m.rule)
	}

	m = typeText(m, "rule nope")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.rule != "sign" {
		t.Errorf("unknown rule changed the rule to %q", m.rule)
	}

	if m.history.Len() != 2 {
		t.Errorf("history has %d entries, want 2", m.history.Len())
	}
}

func TestModel_History(t *testing.T) {
	m := testModel(t)

	m = typeText(m, "12")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = typeText(m, "rules")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMatch {
		t.Fatal("expected match mode")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.mode != modeCtrl || m.input.Value() != "rules" {
		t.Errorf("Up: mode %v input %q", m.mode, m.input.Value())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.mode != modeMatch || m.input.Value() != "12" {
		t.Errorf("Up again: mode %v input %q", m.mode, m.input.Value())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyShiftDown})
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("ShiftDown past the mode's entries: input %q index %d", m.input.Value(), m.historyIdx)
	}
}

func TestModel_Quit(t *testing.T) {
	m := testModel(t)

	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.quitting {
		t.Error("Ctrl+D on an empty line did not quit")
	}

	if m.View() != "" {
		t.Error("View after quitting is not empty")
	}

	m = testModel(t)
	m = typeText(m, "1")
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if m.quitting || m.input.Value() != "" {
		t.Errorf("Ctrl+C with input: quitting %v input %q", m.quitting, m.input.Value())
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	if err := Run(ctx, nil, "", "", log.Logger{}); !errors.Is(err, ErrNoRules) {
		t.Errorf("nil grammar error = %v, want %v", err, ErrNoRules)
	}

	g := peg.MustCompile(value.MustDecode(testGrammar))
	if err := Run(ctx, g, "nope", "", log.Logger{}); !errors.Is(err, peg.ErrUndefinedRule) {
		t.Errorf("unknown rule error = %v, want %v", err, peg.ErrUndefinedRule)
	}
}
