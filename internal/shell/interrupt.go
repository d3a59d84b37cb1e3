package shell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/quocvuong92/osint-shell/internal/display"
)

// InterruptHandler terminates the process cleanly on SIGINT or SIGTERM.
// It lives for the whole process; teardown is process exit.
type InterruptHandler struct {
	out    io.Writer
	exit   func(int)
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	stop   func()
}

// InstallInterruptHandler registers for SIGINT/SIGTERM. When a signal arrives
// the handler prints a farewell, cancels Context and calls exit(0), even if a
// delegate action is still running.
func InstallInterruptHandler(out io.Writer, exit func(int)) *InterruptHandler {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	h := NewInterruptHandler(out, exit, sigs)
	h.stop = func() { signal.Stop(sigs) }
	return h
}

// NewInterruptHandler is InstallInterruptHandler with the signal source
// supplied by the caller. Closing sigs detaches the handler without firing.
func NewInterruptHandler(out io.Writer, exit func(int), sigs <-chan os.Signal) *InterruptHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &InterruptHandler{
		out:    out,
		exit:   exit,
		ctx:    ctx,
		cancel: cancel,
		stop:   func() {},
	}
	go func() {
		if _, ok := <-sigs; ok {
			h.Trigger()
		}
	}()
	return h
}

// Context is cancelled once the interrupt has fired.
func (h *InterruptHandler) Context() context.Context {
	return h.ctx
}

// Trigger runs the interrupt path as if a signal had arrived. Only the first
// call has any effect.
func (h *InterruptHandler) Trigger() {
	h.once.Do(func() {
		display.Alert(h.out, "\nExiting... Goodbye!\n")
		h.cancel()
		h.stop()
		h.exit(0)
	})
}
