package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT and SIGTERM into context cancellation for a
// single command and reports the interruption once.
type InterruptHandler struct {
	out       io.Writer
	label     string
	cancel    context.CancelFunc
	once      sync.Once
	mu        sync.Mutex
	triggered bool
}

// NewInterruptHandler reports interruptions on out, or stdout when out is nil.
func NewInterruptHandler(out io.Writer) *InterruptHandler {
	if out == nil {
		out = os.Stdout
	}
	return &InterruptHandler{out: out}
}

// HandleInterrupts derives a context that ends on the first signal. label
// names the work in the message, e.g. "Import".
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, label string) context.Context {
	ctx, h.cancel = context.WithCancel(ctx)
	h.label = label

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			h.Interrupt()
		case <-ctx.Done():
		}
	}()
	return ctx
}

// Interrupt behaves as if a signal had arrived. Repeated calls only cancel.
func (h *InterruptHandler) Interrupt() {
	h.mu.Lock()
	h.triggered = true
	h.mu.Unlock()

	h.once.Do(func() {
		fmt.Fprintf(h.out, "\n\n%s\n%s\n",
			FormatWarning(h.label+" interrupted!"),
			FormatInfo("Nothing was saved; your data is unchanged."))
	})
	if h.cancel != nil {
		h.cancel()
	}
}

// WasInterrupted reports whether Interrupt has run.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.triggered
}
