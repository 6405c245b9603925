package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when the context ends before input arrives.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader reads lines from a terminal without ignoring ctrl-c.
// A read abandoned by cancellation keeps running in the background and its
// line is lost.
type NonBlockingReader struct {
	mu  sync.Mutex
	buf *bufio.Reader
}

// NewNonBlockingReader wraps r.
func NewNonBlockingReader(r io.Reader) *NonBlockingReader {
	return &NonBlockingReader{buf: bufio.NewReader(r)}
}

type readResult struct {
	line string
	err  error
}

// ReadString reads up to and including delim, or returns ErrInputCancelled
// once ctx is done.
func (r *NonBlockingReader) ReadString(ctx context.Context, delim byte) (string, error) {
	done := make(chan readResult, 1)
	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		line, err := r.buf.ReadString(delim)
		done <- readResult{line: line, err: err}
	}()

	select {
	case res := <-done:
		return res.line, res.err
	case <-ctx.Done():
		return "", ErrInputCancelled
	}
}

// ReadLine returns the next line with surrounding space trimmed. An
// unterminated last line is still returned.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.ReadString(ctx, '\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var yesAnswers = map[string]bool{"y": true, "yes": true, "s": true, "sim": true}

// Confirm asks a yes/no question on w. End of input counts as no.
func Confirm(ctx context.Context, r *NonBlockingReader, w io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(w, FormatPrompt(question+" [y/N]")); err != nil {
		return false, err
	}
	answer, err := r.ReadLine(ctx)
	switch {
	case errors.Is(err, io.EOF):
		return false, nil
	case err != nil:
		return false, err
	}
	return yesAnswers[strings.ToLower(answer)], nil
}
