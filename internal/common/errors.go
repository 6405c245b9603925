// Package common holds the error types, retry policy and slog setup that
// the other packages share.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across packages. Wrap them with %w.
var (
	// ErrNotFound means the requested record or collection does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDatabaseLocked means another writer holds the database; it is retryable.
	ErrDatabaseLocked = errors.New("database is locked")
	// ErrUnsupportedOperation is returned for operations the ledger refuses by design.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrInvalidConfig wraps every configuration problem.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError pairs an error with a message meant for the person at the
// terminal. errors.Is and errors.As see through it to Err.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a message for the user.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable reports whether a storage error is transient: a locked
// database, a deadline, or an error explicitly marked retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseLocked) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	// SQLite reports contention as plain text through the driver.
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
