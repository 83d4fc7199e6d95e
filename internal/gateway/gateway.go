// Package gateway composes password resolution, raw file access, and
// the symmetric cipher into the encrypted-credential operations:
// encrypt-and-write and decrypt-and-return. Every exit path wipes the
// passwords and plaintext copies it no longer needs; buffers returned
// to the caller transfer ownership, and the caller wipes them.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/oidcvault/oidcvault/internal/crypt"
	"github.com/oidcvault/oidcvault/internal/events"
	"github.com/oidcvault/oidcvault/internal/fileio"
	"github.com/oidcvault/oidcvault/internal/models"
	"github.com/oidcvault/oidcvault/internal/passwd"
	"github.com/oidcvault/oidcvault/internal/secret"
)

// PasswordOptions carries the caller-supplied password strategy inputs.
type PasswordOptions struct {
	// Suggested, when non-nil, is used for encryption without
	// prompting (e.g. a password the caller already holds).
	// Ownership transfers to the gateway.
	Suggested *secret.Buffer

	// Command overrides the configured external password command.
	Command string
}

// Gateway performs encrypted reads and writes of credential files.
type Gateway struct {
	fs        *fileio.FS
	cipher    crypt.Cipher
	passwords *passwd.Resolver
	logger    *events.Logger
}

// New creates a Gateway. logger may be nil.
func New(fs *fileio.FS, cipher crypt.Cipher, passwords *passwd.Resolver, logger *events.Logger) *Gateway {
	if logger == nil {
		logger = events.Discard()
	}
	return &Gateway{
		fs:        fs,
		cipher:    cipher,
		passwords: passwords,
		logger:    logger.WithField("component", "gateway"),
	}
}

// EncryptAndWrite obtains a password, encrypts plaintext under it, and
// writes the ciphertext to the target. plaintext, hint and target are
// required; a missing argument fails before any I/O. The resolved
// password is wiped regardless of outcome.
func (g *Gateway) EncryptAndWrite(ctx context.Context, tgt Target, plaintext []byte, hint string, opts PasswordOptions) error {
	if tgt == nil || plaintext == nil || hint == "" {
		opts.Suggested.Wipe()
		return models.ArgError("EncryptAndWrite", missingArg(tgt, plaintext, hint))
	}

	path, err := tgt.ResolvePath()
	if err != nil {
		opts.Suggested.Wipe()
		return err
	}

	password, err := g.passwords.Candidate(ctx, passwd.Request{
		Hint:      hint,
		Suggested: opts.Suggested,
		Command:   opts.Command,
	}, 1)
	if err != nil {
		return err
	}
	defer password.Wipe()

	ciphertext, err := g.cipher.Encrypt(plaintext, password.Bytes())
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", path, err)
	}

	if err := g.fs.Write(path, ciphertext, 0600); err != nil {
		return err
	}

	g.opLogger(ctx).WithField("path", path).Debug("Encrypted content written")
	return nil
}

// opLogger tags the gateway logger with the account carried in ctx,
// when the caller set one.
func (g *Gateway) opLogger(ctx context.Context) *events.Logger {
	if account := events.GetAccount(ctx); account != "" {
		return g.logger.WithField("account", account)
	}
	return g.logger
}

// DecryptWithPassword reads the target's ciphertext and repeatedly
// resolves a password until decryption succeeds or the retry limit is
// reached. On success it returns both the plaintext and the password
// that worked, so the caller can re-encrypt after modification without
// prompting again; the caller owns both and must wipe them. A missing
// target file fails with models.ErrFileNotFound before any password
// strategy runs.
func (g *Gateway) DecryptWithPassword(ctx context.Context, tgt Target, pwCommand string) (*secret.Buffer, *secret.Buffer, error) {
	if tgt == nil {
		return nil, nil, models.ArgError("DecryptWithPassword", "target")
	}

	path, err := tgt.ResolvePath()
	if err != nil {
		return nil, nil, err
	}

	ciphertext, err := g.fs.Read(path)
	if err != nil {
		return nil, nil, err
	}

	req := passwd.Request{Hint: tgt.Hint(), Command: pwCommand}
	maxAttempts := g.passwords.MaxAttempts()

	for attempt := 1; ; attempt++ {
		password, err := g.passwords.Candidate(ctx, req, attempt)
		if err != nil {
			return nil, nil, err
		}

		plaintext, err := g.cipher.Decrypt(ciphertext, password.Bytes())
		if err == nil {
			g.opLogger(ctx).WithField("path", path).Debug("Content decrypted")
			return secret.New(plaintext), password, nil
		}

		// Rejected candidates are wiped before the next attempt
		// is constructed.
		password.Wipe()

		if !errors.Is(err, crypt.ErrDecryptionFailed) {
			return nil, nil, fmt.Errorf("decrypt %s: %w", path, err)
		}

		if attempt >= maxAttempts {
			return nil, nil, &models.PasswordError{
				Strategy: "retry",
				Attempts: attempt,
				Err:      models.ErrPasswordExhausted,
			}
		}

		g.opLogger(ctx).WithFields(map[string]interface{}{
			"path":    path,
			"attempt": attempt,
		}).Debug("Decryption failed, falling back to prompt")
	}
}

// Decrypt is DecryptWithPassword for callers that do not need the
// password back; the succeeding password is wiped before returning.
func (g *Gateway) Decrypt(ctx context.Context, tgt Target, pwCommand string) (*secret.Buffer, error) {
	plaintext, password, err := g.DecryptWithPassword(ctx, tgt, pwCommand)
	password.Wipe()
	return plaintext, err
}

func missingArg(tgt Target, plaintext []byte, hint string) string {
	switch {
	case tgt == nil:
		return "target"
	case plaintext == nil:
		return "plaintext"
	case hint == "":
		return "hint"
	default:
		return "unknown"
	}
}
