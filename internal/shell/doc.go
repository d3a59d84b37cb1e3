// Package shell implements the command-dispatch core of the interactive
// shell: the ordered command registry, the output mode flags, prefix
// completion, interrupt handling, and the dispatcher that ties them together.
//
// # Dispatch order
//
// Each input line is trimmed and resolved in this order:
//
//  1. Empty lines are ignored.
//  2. Mode tokens (FILE=y, FILE=n, JSON=y, JSON=n) update ModeState.
//  3. Registered commands are executed.
//  4. Anything else is reported as an unknown command.
//
// # Usage
//
//	modes := shell.NewModeState(false, false)
//	reg := shell.NewRegistry()
//	reg.Register(shell.NewDelegateCommand("info", "Get target info.", inv.Info))
//	d := shell.NewDispatcher(reg, modes, shell.WithOutput(os.Stdout))
//	d.RegisterMetaCommands()
//	res := d.Dispatch(ctx, "info")
package shell
