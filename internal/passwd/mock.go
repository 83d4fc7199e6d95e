package passwd

import (
	"github.com/oidcvault/oidcvault/internal/models"
	"github.com/oidcvault/oidcvault/internal/secret"
)

// MockPrompter is a test Prompter that replays scripted responses.
type MockPrompter struct {
	// Passwords are returned in order; when exhausted the prompter
	// reports cancellation.
	Passwords []string

	// Err, when set, is returned instead of a password.
	Err error

	// Calls counts ReadPassword invocations.
	Calls int

	// Hints records the hint of each call.
	Hints []string
}

func (m *MockPrompter) ReadPassword(hint string) (*secret.Buffer, error) {
	m.Calls++
	m.Hints = append(m.Hints, hint)

	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Passwords) == 0 {
		return nil, models.ErrPromptCancelled
	}

	pw := m.Passwords[0]
	m.Passwords = m.Passwords[1:]
	return secret.FromString(pw), nil
}
