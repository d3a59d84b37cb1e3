// Package history persists interactive command history between sessions.
package history

// Recorder defines the interface for command history persistence.
// This interface enables dependency injection and easier testing.
type Recorder interface {
	// Load returns the persisted entries, oldest first
	Load() ([]string, error)

	// Append records one command
	Append(line string) error
}

// Ensure concrete type implements the interface
var _ Recorder = (*History)(nil)
