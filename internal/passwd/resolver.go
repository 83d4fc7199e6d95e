// Package passwd obtains encryption passwords through an ordered list
// of fallback strategies: a caller-suggested value, an external
// password command, then an interactive prompt. For decryption the
// resolution supports a bounded retry, prompting again after a rejected
// candidate up to a fixed limit.
package passwd

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/oidcvault/oidcvault/internal/config"
	"github.com/oidcvault/oidcvault/internal/events"
	"github.com/oidcvault/oidcvault/internal/models"
	"github.com/oidcvault/oidcvault/internal/secret"
)

// Request describes one encrypt/decrypt attempt sequence.
type Request struct {
	// Hint tells the user which secret is requested.
	Hint string

	// Suggested, when non-nil, is used as the first candidate
	// without prompting. Ownership transfers to the resolver.
	Suggested *secret.Buffer

	// Command overrides the resolver's configured password command
	// for this request. Empty means use the configured one.
	Command string
}

// Resolver implements the fallback strategy chain.
type Resolver struct {
	command     string
	maxAttempts int
	prompter    Prompter
	logger      *events.Logger
}

// NewResolver creates a Resolver. prompter and logger may be nil; a nil
// prompter makes interactive resolution fail as cancelled, which is the
// right behavior for non-interactive callers.
func NewResolver(cfg config.PasswordConfig, prompter Prompter, logger *events.Logger) *Resolver {
	if logger == nil {
		logger = events.Discard()
	}
	return &Resolver{
		command:     cfg.Command,
		maxAttempts: cfg.MaxAttempts,
		prompter:    prompter,
		logger:      logger.WithField("component", "passwd"),
	}
}

// MaxAttempts reports the retry limit for decryption candidates.
func (r *Resolver) MaxAttempts() int {
	return r.maxAttempts
}

// Candidate produces the password candidate for the given 1-based
// attempt number. Attempt 1 walks the full chain: suggested value,
// external command, interactive prompt. Later attempts prompt only,
// even when the command supplied the rejected candidate. Past the
// retry limit it returns models.ErrPasswordExhausted.
//
// Ownership of the returned buffer transfers to the caller, who must
// wipe it.
func (r *Resolver) Candidate(ctx context.Context, req Request, attempt int) (*secret.Buffer, error) {
	if attempt > r.maxAttempts {
		return nil, &models.PasswordError{
			Strategy: "retry",
			Attempts: r.maxAttempts,
			Err:      models.ErrPasswordExhausted,
		}
	}

	if attempt == 1 {
		if req.Suggested != nil && req.Suggested.Len() > 0 {
			r.logger.Debug("Using caller-suggested password")
			return req.Suggested, nil
		}

		if cmd := r.commandFor(req); cmd != "" {
			if pw := r.runCommand(ctx, cmd); pw != nil {
				return pw, nil
			}
			// No candidate produced; fall through to the prompt.
		}
	}

	return r.prompt(req.Hint)
}

func (r *Resolver) commandFor(req Request) string {
	if req.Command != "" {
		return req.Command
	}
	return r.command
}

// runCommand invokes the external password command with no terminal
// attached and returns its trimmed stdout as a candidate, or nil when
// the command failed or printed nothing.
func (r *Resolver) runCommand(ctx context.Context, command string) *secret.Buffer {
	r.logger.WithField("command", command).Debug("Running password command")

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Stdin = nil

	out, err := cmd.Output()
	if err != nil {
		secret.Wipe(out)
		r.logger.WithError(err).Debug("Password command produced no candidate")
		return nil
	}

	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		secret.Wipe(out)
		r.logger.Debug("Password command printed empty output")
		return nil
	}

	pw := make([]byte, len(trimmed))
	copy(pw, trimmed)
	secret.Wipe(out)
	return secret.New(pw)
}

func (r *Resolver) prompt(hint string) (*secret.Buffer, error) {
	if r.prompter == nil {
		return nil, &models.PasswordError{
			Strategy: "prompt",
			Attempts: 1,
			Err:      models.ErrPromptCancelled,
		}
	}

	pw, err := r.prompter.ReadPassword(hint)
	if err != nil {
		return nil, &models.PasswordError{Strategy: "prompt", Attempts: 1, Err: err}
	}
	return pw, nil
}
