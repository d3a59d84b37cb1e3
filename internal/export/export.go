// Package export writes command results to the output directory as
// "<target>_<command>.txt" and "<target>_<command>.json" files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes result files into a single directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer for dir, which must already exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the file path for target and name.
func (w *Writer) Path(target, name string) string {
	return filepath.Join(w.dir, sanitize(target)+"_"+sanitize(name))
}

// WriteText writes lines to <target>_<command>.txt and returns the path.
func (w *Writer) WriteText(target, command string, lines []string) (string, error) {
	path := w.Path(target, command+".txt")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriteJSON writes v, indented, to <target>_<command>.json and returns the path.
func (w *Writer) WriteJSON(target, command string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s result: %w", command, err)
	}
	path := w.Path(target, command+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriteFile writes downloaded media to <target>_<name> and returns the path.
func (w *Writer) WriteFile(target, name string, data []byte) (string, error) {
	path := w.Path(target, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// sanitize keeps path separators out of file names.
func sanitize(s string) string {
	return strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(s)
}
