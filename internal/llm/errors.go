package llm

import (
	"errors"
	"fmt"
)

// TransientError marks a recoverable backend failure: timeout, rate limit,
// 5xx-equivalent, or a malformed-but-retryable response. The client retries
// these with backoff.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError marks an unrecoverable backend failure: authentication,
// permanently invalid request. The client aborts the affected request
// immediately and never retries.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// Transientf wraps a formatted error as retryable.
func Transientf(format string, args ...any) error {
	return &TransientError{Err: fmt.Errorf(format, args...)}
}

// Fatal wraps err as non-retryable.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// Fatalf wraps a formatted error as non-retryable.
func Fatalf(format string, args ...any) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

// IsTransient reports whether err is classified as retryable.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsFatal reports whether err is classified as non-retryable.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
