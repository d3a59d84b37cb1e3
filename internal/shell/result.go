package shell

// Status classifies the outcome of dispatching one line.
type Status int

const (
	// StatusEmpty means the line was blank and nothing happened.
	StatusEmpty Status = iota
	// StatusModeChanged means a mode token updated ModeState.
	StatusModeChanged
	// StatusOK means a command ran successfully.
	StatusOK
	// StatusFailed means a command ran and returned an error.
	StatusFailed
	// StatusUnknown means the line matched no mode token or command.
	StatusUnknown
	// StatusQuit means a quit/exit command asked the shell to stop.
	StatusQuit
	// StatusInterrupted means the interrupt context was already cancelled.
	StatusInterrupted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusModeChanged:
		return "mode-changed"
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusUnknown:
		return "unknown"
	case StatusQuit:
		return "quit"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "invalid"
	}
}

// Result is the outcome of a dispatch.
type Result struct {
	Status  Status
	Command string
	Err     error
}

// OK reports a successful command.
func OK(command string) Result {
	return Result{Status: StatusOK, Command: command}
}

// Failed reports a command that returned err.
func Failed(command string, err error) Result {
	return Result{Status: StatusFailed, Command: command, Err: err}
}

// Quit reports a request to leave the shell.
func Quit() Result {
	return Result{Status: StatusQuit}
}

// Terminal reports whether the loop must stop after this result.
func (r Result) Terminal() bool {
	return r.Status == StatusQuit || r.Status == StatusInterrupted
}
