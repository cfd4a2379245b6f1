package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "rules", 5, "rules", 0, 5},
		{"argument", "rule inte", 9, "inte", 5, 9},
		{"mid_word", "grammar", 3, "grammar", 0, 7},
		{"at_start", "quit", 0, "quit", 0, 4},
		{"empty_at_boundary", "rule ", 5, "", 5, 5},
		{"tab_separated", "rule\tdig", 8, "dig", 5, 8},
		{"cursor_past_end", "help", 10, "help", 0, 4},
		{"punctuation_kept", "rule digit_0-9", 14, "digit_0-9", 5, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidatesFor(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name      string
		input     string
		wordStart int
		want      []string
	}{
		{"command", "ru", 0, ctrlCommands},
		{"rule_argument", "rule di", 5, m.grammar.Names()},
		{"other_argument", "help x", 5, nil},
		{"second_argument", "rule digit x", 11, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.candidatesFor(tt.input, tt.wordStart); !slices.Equal(got, tt.want) {
				t.Errorf("candidatesFor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	m := testModel(t)
	m = m.toggleMode()
	m = typeText(m, "rule ")

	if len(m.matches) != m.grammar.Len() {
		t.Fatalf("matches = %d, want every rule", len(m.matches))
	}

	if bar := renderCandidateBar(m.matches, -1, false, 1000); bar == "" {
		t.Error("wide bar is empty")
	}

	if bar := renderCandidateBar(m.matches, -1, false, 0); bar != "" {
		t.Errorf("zero-width bar = %q", bar)
	}

	if bar := renderCandidateBar(nil, -1, false, 80); bar != "" {
		t.Errorf("bar without matches = %q", bar)
	}
}
