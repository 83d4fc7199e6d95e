package models

import (
	"errors"
	"fmt"
)

// Sentinel errors. Three layers per the error design: argument errors
// (detected before any I/O, never retried), resource errors (missing
// file, write failure), and credential errors (password resolution or
// cipher rejection, surfaced distinctly so callers can retry with a
// different strategy).
var (
	ErrMissingArgument     = errors.New("missing required argument")
	ErrFileNotFound        = errors.New("file not found")
	ErrStoreNotInitialized = errors.New("credential store not initialized")
	ErrPasswordExhausted   = errors.New("password attempts exhausted")
	ErrPromptCancelled     = errors.New("password prompt cancelled")
	ErrNoPassword          = errors.New("no password could be obtained")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// StoreError wraps a failure of a store or file operation.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// PasswordError reports a failed password resolution, carrying the
// strategy that failed and how many candidates were tried.
type PasswordError struct {
	Strategy string
	Attempts int
	Err      error
}

func (e *PasswordError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("password resolution via %s after %d attempts: %v",
			e.Strategy, e.Attempts, e.Err)
	}
	return fmt.Sprintf("password resolution via %s: %v", e.Strategy, e.Err)
}

func (e *PasswordError) Unwrap() error {
	return e.Err
}

// ArgError reports a missing required argument, named for the caller's
// benefit. Detected before any I/O.
func ArgError(fn, arg string) error {
	return fmt.Errorf("%s: argument %q: %w", fn, arg, ErrMissingArgument)
}
