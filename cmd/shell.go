package cmd

import (
	"context"
	"io"

	"github.com/quocvuong92/osint-shell/internal/constants"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/investigator"
	"github.com/quocvuong92/osint-shell/internal/logging"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

const banner = `
   ____       _       __        __         ____
  / __ \_____(_)___  / /_      / /_  ___  / / /
 / / / / ___/ / __ \/ __/_____/ __ \/ _ \/ / /
/ /_/ (__  ) / / / / /_/_____/ / / /  __/ / /
\____/____/_/_/ /_/\__/     /_/ /_/\___/_/_/
`

// newDispatcher builds the registry: meta commands first, then the
// investigator's commands in listing order.
func newDispatcher(inv *investigator.Investigator, modes *shell.ModeState, out io.Writer, logger *logging.Logger) *shell.Dispatcher {
	reg := shell.NewRegistry()
	d := shell.NewDispatcher(reg, modes, shell.WithOutput(out), shell.WithLogger(logger))
	d.RegisterMetaCommands()
	for _, c := range inv.Actions() {
		reg.Register(c)
	}
	return d
}

// printBanner prints the logo and the mode token hints.
func printBanner(out io.Writer, target string) {
	display.Highlight(out, "%s\n", banner)
	display.Highlight(out, "Version %s\n\n", constants.Version)
	display.Highlight(out, "Target: %s\n", target)
	display.Highlight(out, "Type 'list' to show all allowed commands\n")
	display.Highlight(out, "Type 'FILE=y' to save results to files like '<target_username>_<command>.txt'\n")
	display.Highlight(out, "Type 'FILE=n' to disable saving to files\n")
	display.Highlight(out, "Type 'JSON=y' to export results to JSON files like '<target_username>_<command>.json'\n")
	display.Highlight(out, "Type 'JSON=n' to disable exporting to files\n")
}

// runOneShot executes command exactly once. The process exits 0 afterwards
// whatever the result.
func runOneShot(ctx context.Context, d *shell.Dispatcher, command string) shell.Result {
	res := d.RunOnce(ctx, command)
	logging.Debug("one-shot command finished", logging.Fields{
		"command": command,
		"status":  res.Status.String(),
	})
	return res
}
