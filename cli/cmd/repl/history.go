package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

const (
	matchPrefix = "M:"
	ctrlPrefix  = "C:"
)

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String returns the entry as a line of the history file.
func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return ctrlPrefix + e.Line + "\n"
	}

	return matchPrefix + e.Line + "\n"
}

// History manages input history with file persistence. Each line of the
// history file is prefixed with the mode of its entry.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path. An
// empty path keeps the history in memory only.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		mode, content := modeMatch, line

		if s, ok := strings.CutPrefix(line, ctrlPrefix); ok {
			mode, content = modeCtrl, s
		} else if s, ok := strings.CutPrefix(line, matchPrefix); ok {
			content = s
		}

		h.entries = append(h.entries, HistoryEntry{
			Line: content,
			Mode: mode,
		})
	}

	return scanner.Err()
}

// WriteWithMode appends a new entry to the history with the specified mode.
// If a duplicate entry exists (same line and mode), it removes the old one.
func (h *History) WriteWithMode(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	e := HistoryEntry{Line: entry, Mode: mode}

	// Same as the last entry.
	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return len(entry), nil
	}

	// An older duplicate moves to the end, which requires a rewrite.
	if i := slices.Index(h.entries, e); i >= 0 {
		h.entries = append(slices.Delete(h.entries, i, i+1), e)

		return h.rewriteFile()
	}

	h.entries = append(h.entries, e)

	if h.path == "" {
		return len(entry), nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(e.String())
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	if h.path == "" {
		return 0, nil
	}

	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	totalBytes := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(entry.String())
		if err != nil {
			return totalBytes, err
		}

		totalBytes += n
	}

	return totalBytes, nil
}
