package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/logging"
)

// Prompt is printed before each interactive read.
const Prompt = "Run a command: "

// LineReader supplies one line of operator input per call. It returns io.EOF
// when input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// Dispatcher resolves input lines against mode tokens and the registry and
// executes the result. It owns ModeState; only the dispatching goroutine may
// touch it.
type Dispatcher struct {
	registry *Registry
	modes    *ModeState
	out      io.Writer
	logger   *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithOutput sets where shell messages are written.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) { d.out = w }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher creates a dispatcher over registry and modes.
func NewDispatcher(registry *Registry, modes *ModeState, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		modes:    modes,
		out:      os.Stdout,
		logger:   logging.DefaultLogger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the dispatcher's command registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Modes returns the dispatcher's mode flags.
func (d *Dispatcher) Modes() *ModeState { return d.modes }

// RegisterMetaCommands adds list, help, quit and exit to the registry.
func (d *Dispatcher) RegisterMetaCommands() {
	show := func() Result {
		d.ShowCommands()
		return Result{Status: StatusOK}
	}
	quit := func() Result {
		display.Alert(d.out, "Goodbye!\n")
		return Quit()
	}
	d.registry.Register(NewMetaCommand("list", "Show all allowed commands.", show))
	d.registry.Register(NewMetaCommand("help", "Show all allowed commands.", show))
	d.registry.Register(NewMetaCommand("quit", "Exit the shell.", quit))
	d.registry.Register(NewMetaCommand("exit", "Exit the shell.", quit))
}

// ShowCommands prints the mode tokens and every registered command.
func (d *Dispatcher) ShowCommands() {
	display.ShowEntry(d.out, "FILE=y/n", "Enable/disable output in a '<target_username>_<command>.txt' file.")
	display.ShowEntry(d.out, "JSON=y/n", "Enable/disable export in a '<target_username>_<command>.json' file.")
	for _, c := range d.registry.Commands() {
		display.ShowEntry(d.out, c.Name(), c.Description())
	}
}

// Dispatch resolves and executes a single line. Failures are reported and
// returned in the Result; they never escape as panics.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) Result {
	if ctx.Err() != nil {
		return Result{Status: StatusInterrupted, Err: ctx.Err()}
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return Result{Status: StatusEmpty}
	}

	if d.modes.ApplyToken(input) {
		d.logger.Debug("mode changed", logging.Fields{
			"token":       input,
			"file_output": d.modes.FileOutput(),
			"json_dump":   d.modes.JSONDump(),
		})
		return Result{Status: StatusModeChanged, Command: input}
	}

	cmd, ok := d.registry.Resolve(input)
	if !ok {
		display.Alert(d.out, "Unknown command\n")
		return Result{Status: StatusUnknown, Command: input}
	}

	d.logger.Debug("executing command", logging.Fields{"command": input})
	res := cmd.Execute(ctx, d.modes)
	if res.Status == StatusFailed {
		d.logger.Debug("command failed", logging.Fields{"command": input, "error": res.Err})
		display.ShowError(d.out, res.Err.Error())
	}
	return res
}

// RunOnce executes command exactly once, whatever its outcome.
func (d *Dispatcher) RunOnce(ctx context.Context, command string) Result {
	return d.Dispatch(ctx, command)
}

// Run reads and dispatches lines until a quit command, an interrupt, or the
// end of input. Command failures never stop the loop.
func (d *Dispatcher) Run(ctx context.Context, in LineReader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		display.Highlight(d.out, Prompt)
		line, err := in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if res := d.Dispatch(ctx, line); res.Terminal() {
			return nil
		}
	}
}
