package shell

import (
	"context"
	"fmt"
)

// Modes is the read-only view of ModeState handed to delegate actions.
type Modes interface {
	FileOutput() bool
	JSONDump() bool
}

// Action is the work bound to a delegate command. It receives the current
// mode flags at invocation time.
type Action func(ctx context.Context, modes Modes) error

// Command is an entry in the Registry.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, modes Modes) Result
}

// MetaCommand acts on the shell itself (listing commands, quitting).
type MetaCommand struct {
	name        string
	description string
	run         func() Result
}

// NewMetaCommand creates a shell-level command.
func NewMetaCommand(name, description string, run func() Result) *MetaCommand {
	return &MetaCommand{name: name, description: description, run: run}
}

func (c *MetaCommand) Name() string        { return c.name }
func (c *MetaCommand) Description() string { return c.description }

// Execute runs the meta command. Modes are ignored.
func (c *MetaCommand) Execute(_ context.Context, _ Modes) Result {
	res := c.run()
	res.Command = c.name
	return res
}

// DelegateCommand forwards to an action owned by an external collaborator.
type DelegateCommand struct {
	name        string
	description string
	action      Action
}

// NewDelegateCommand creates a command bound to action.
func NewDelegateCommand(name, description string, action Action) *DelegateCommand {
	return &DelegateCommand{name: name, description: description, action: action}
}

func (c *DelegateCommand) Name() string        { return c.name }
func (c *DelegateCommand) Description() string { return c.description }

// Execute runs the action. Errors and panics both come back as a failed
// Result so a misbehaving action cannot take down the loop.
func (c *DelegateCommand) Execute(ctx context.Context, modes Modes) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failed(c.name, fmt.Errorf("%v", r))
		}
	}()
	if err := c.action(ctx, modes); err != nil {
		return Failed(c.name, err)
	}
	return OK(c.name)
}
