// Package vaultdir manages the credential directory: resolving its
// location on disk, cataloging the account and client config files
// inside it, and reading and writing files addressed by name.
package vaultdir

import (
	"path/filepath"
	"strings"

	"github.com/oidcvault/oidcvault/internal/config"
	"github.com/oidcvault/oidcvault/internal/events"
	"github.com/oidcvault/oidcvault/internal/fileio"
	"github.com/oidcvault/oidcvault/internal/models"
)

// Store locates and operates on the credential directory. The candidate
// location list is injected configuration, so tests can point it at a
// temp directory without mutating the environment.
type Store struct {
	candidates []string // relative to home, priority order
	seedFile   string
	home       string
	fs         *fileio.FS
	logger     *events.Logger
}

// New creates a Store. home is the user's home directory; fs and logger
// may be nil.
func New(cfg config.StoreConfig, home string, fs *fileio.FS, logger *events.Logger) *Store {
	if logger == nil {
		logger = events.Discard()
	}
	if fs == nil {
		fs = fileio.New(logger)
	}
	return &Store{
		candidates: cfg.CandidateDirs,
		seedFile:   cfg.SeedFile,
		home:       home,
		fs:         fs,
		logger:     logger.WithField("component", "vaultdir"),
	}
}

// Resolve returns the first candidate location that exists as a
// directory. The second result is false when none exists, which callers
// interpret as "not yet initialized", not as an error. Every call
// re-probes the filesystem; nothing is cached.
func (s *Store) Resolve() (string, bool) {
	for _, cand := range s.candidates {
		path := filepath.Join(s.home, cand)
		exists := s.fs.DirExists(path)
		s.logger.WithFields(map[string]interface{}{
			"dir":    path,
			"exists": exists,
		}).Debug("Probing credential directory")
		if exists {
			return path, true
		}
	}
	return "", false
}

// Init creates the credential directory and seeds it with an empty
// issuer-config file. The primary candidate is chosen when its parent
// directory exists, otherwise the last (legacy) candidate. Init is
// idempotent: an existing directory and seed file are left untouched.
func (s *Store) Init() (string, error) {
	dir := filepath.Join(s.home, s.candidates[0])
	if len(s.candidates) > 1 && !s.fs.DirExists(filepath.Dir(dir)) {
		dir = filepath.Join(s.home, s.candidates[len(s.candidates)-1])
	}

	if err := s.fs.CreateDir(dir); err != nil {
		return "", err
	}
	s.logger.WithField("dir", dir).Info("Credential directory initialized")

	// Seed-file failure does not fail initialization; the issuer
	// subsystem recreates its config on demand.
	seedPath := filepath.Join(dir, s.seedFile)
	if exists, err := s.fs.Exists(seedPath); err == nil && !exists {
		if err := s.fs.Write(seedPath, nil, 0600); err != nil {
			s.logger.WithError(err).Warn("Could not create issuer config seed file")
		}
	}

	return dir, nil
}

// PathFor resolves a filename to its absolute path inside the
// credential directory.
func (s *Store) PathFor(name string) (string, error) {
	if name == "" {
		return "", models.ArgError("PathFor", "name")
	}
	if strings.ContainsRune(name, filepath.Separator) || name == "." || name == ".." {
		return "", &models.StoreError{Op: "resolve", Path: name, Err: models.ErrMissingArgument}
	}

	dir, ok := s.Resolve()
	if !ok {
		return "", models.ErrStoreNotInitialized
	}
	return filepath.Join(dir, name), nil
}

// ReadFile reads a file located in the credential directory.
func (s *Store) ReadFile(name string) ([]byte, error) {
	path, err := s.PathFor(name)
	if err != nil {
		return nil, err
	}
	return s.fs.Read(path)
}

// WriteFile writes data to a file located in the credential directory.
func (s *Store) WriteFile(name string, data []byte) error {
	path, err := s.PathFor(name)
	if err != nil {
		return err
	}
	return s.fs.Write(path, data, 0600)
}

// FileExists checks if a file exists in the credential directory.
func (s *Store) FileExists(name string) (bool, error) {
	path, err := s.PathFor(name)
	if err != nil {
		return false, err
	}
	return s.fs.Exists(path)
}

// RemoveFile removes a file located in the credential directory.
func (s *Store) RemoveFile(name string) error {
	path, err := s.PathFor(name)
	if err != nil {
		return err
	}
	return s.fs.Remove(path)
}

// AccountConfigExists reports whether an account config with the given
// shortname is stored.
func (s *Store) AccountConfigExists(name string) (bool, error) {
	names, err := s.ListAccountConfigs()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}
