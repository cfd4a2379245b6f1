package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	grammar := filepath.Join(dir, "grammar.json")

	err := os.WriteFile(grammar, []byte(`{
  "kind": "grammar",
  "rules": {"digit": {"kind": "range", "from": 48, "to": 57}}
}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"match", []string{"match", grammar, "digit", "7x"}, `{"value":[55],"remainder":"x"}`},
		{"match_yaml", []string{"match", "-o", "yaml", grammar, "digit", "x"}, `false`},
		{"fmt_json", []string{"fmt", "json", "-i", "0", grammar}, `{"kind":"grammar","rules":{"digit":{"kind":"range","from":48,"to":57}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := run(context.Background(), &buf, func(int) {}, tt.args...)
			if err != nil {
				t.Fatal(err)
			}

			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("output = %s, want %s", got, tt.want)
			}
		})
	}

	if err := run(context.Background(), &bytes.Buffer{}, func(int) {}, "match", grammar); err == nil {
		t.Error("missing arguments did not fail")
	}
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		caller bool
	}{
		{"separate", []string{"--log-level", "debug", "--log-format", "json"}, "debug", "json", false},
		{"assigned", []string{"eval", "--log-level=warn", "--log-caller"}, "warn", "", true},
		{"negated", []string{"--log-caller", "--no-log-caller"}, "", "", false},
		{"negated_assigned", []string{"--no-log-caller=false"}, "", "", true},
		{"missing_value", []string{"--log-level", "--log-format=text"}, "", "text", false},
		{"ignored", []string{"--level", "trace", "-v"}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f logConfig
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format || f.Caller != tt.caller {
				t.Errorf("scan = {%q %q %v}, want {%q %q %v}",
					f.Level, f.Format, f.Caller, tt.level, tt.format, tt.caller)
			}
		})
	}
}
