package shell

import "strings"

// Completer matches command-name prefixes against a Registry.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over r.
func NewCompleter(r *Registry) *Completer {
	return &Completer{registry: r}
}

// Complete returns the index-th registered name starting with prefix, in
// registry order. It returns false once index passes the last match.
func (c *Completer) Complete(prefix string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	matches := c.Matches(prefix)
	if index >= len(matches) {
		return "", false
	}
	return matches[index], true
}

// Matches returns every registered name starting with prefix.
func (c *Completer) Matches(prefix string) []string {
	var out []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}
