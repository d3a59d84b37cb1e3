package shell

// Registry is an ordered name-to-command mapping. Lookups are exact and
// case-sensitive; iteration follows registration order.
type Registry struct {
	commands []Command
	index    map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds cmd. Registering a name twice replaces the earlier command
// but keeps its original position.
func (r *Registry) Register(cmd Command) {
	if i, ok := r.index[cmd.Name()]; ok {
		r.commands[i] = cmd
		return
	}
	r.index[cmd.Name()] = len(r.commands)
	r.commands = append(r.commands, cmd)
}

// Resolve returns the command registered under name.
func (r *Registry) Resolve(name string) (Command, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.commands[i], true
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.commands))
	for i, c := range r.commands {
		names[i] = c.Name()
	}
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}
