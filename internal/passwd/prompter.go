package passwd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/oidcvault/oidcvault/internal/models"
	"github.com/oidcvault/oidcvault/internal/secret"
)

// Prompter obtains a password interactively. Implementations must not
// echo input. A declined or aborted prompt returns
// models.ErrPromptCancelled; it is a normal failure outcome, never a
// process abort.
type Prompter interface {
	ReadPassword(hint string) (*secret.Buffer, error)
}

// TermPrompter reads a password from a terminal without echo.
type TermPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTermPrompter prompts on stdin/stderr.
func NewTermPrompter() *TermPrompter {
	return &TermPrompter{In: os.Stdin, Out: os.Stderr}
}

// ReadPassword displays the hint and reads a password. Empty input
// counts as the user declining.
func (p *TermPrompter) ReadPassword(hint string) (*secret.Buffer, error) {
	if !term.IsTerminal(int(p.In.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal: %w", models.ErrPromptCancelled)
	}

	fmt.Fprintf(p.Out, "Enter password for %s: ", hint)
	pw, err := term.ReadPassword(int(p.In.Fd()))
	fmt.Fprintln(p.Out)

	if err != nil {
		secret.Wipe(pw)
		return nil, fmt.Errorf("read password: %w", models.ErrPromptCancelled)
	}
	if len(pw) == 0 {
		return nil, models.ErrPromptCancelled
	}

	return secret.New(pw), nil
}
