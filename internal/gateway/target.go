package gateway

import (
	"github.com/oidcvault/oidcvault/internal/fileio"
	"github.com/oidcvault/oidcvault/internal/models"
	"github.com/oidcvault/oidcvault/internal/vaultdir"
)

// Target is an address-resolution strategy: either an arbitrary
// filesystem path or a name resolved inside the credential directory.
// Both funnel into the same gateway logic, selected once at the call
// site.
type Target interface {
	// ResolvePath resolves the target to an absolute path.
	ResolvePath() (string, error)
	// Hint names the target for prompts and logs.
	Hint() string
}

// PathTarget addresses an arbitrary filesystem path.
type PathTarget string

func (t PathTarget) ResolvePath() (string, error) {
	if t == "" {
		return "", models.ArgError("PathTarget", "path")
	}
	return fileio.Abs(string(t))
}

func (t PathTarget) Hint() string {
	return string(t)
}

// StoreTarget addresses a file by name inside the credential directory.
type StoreTarget struct {
	Store *vaultdir.Store
	Name  string
}

func (t StoreTarget) ResolvePath() (string, error) {
	if t.Store == nil {
		return "", models.ArgError("StoreTarget", "store")
	}
	return t.Store.PathFor(t.Name)
}

func (t StoreTarget) Hint() string {
	return t.Name
}
