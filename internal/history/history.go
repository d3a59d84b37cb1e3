package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the history file inside the data directory.
const FileName = "history"

// History is a line-per-entry history file capped at a maximum length.
type History struct {
	mu   sync.Mutex
	path string
	max  int
}

// NewHistory creates a history stored in dataDir keeping at most max entries.
func NewHistory(dataDir string, max int) *History {
	return &History{path: filepath.Join(dataDir, FileName), max: max}
}

// Load returns the most recent entries, oldest first. A missing file yields
// no entries. The file is compacted when it holds more than max entries.
func (h *History) Load() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var entries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			entries = append(entries, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if h.max > 0 && len(entries) > h.max {
		entries = entries[len(entries)-h.max:]
		if err := h.rewrite(entries); err != nil {
			return entries, err
		}
	}
	return entries, nil
}

// Append records line. Blank lines are ignored.
func (h *History) Append(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

func (h *History) rewrite(entries []string) error {
	tmp := h.path + ".tmp"
	content := strings.Join(entries, "\n") + "\n"
	if err := os.WriteFile(tmp, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to compact history: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		return fmt.Errorf("failed to compact history: %w", err)
	}
	return nil
}
