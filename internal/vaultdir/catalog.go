package vaultdir

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oidcvault/oidcvault/internal/models"
)

const clientConfigSuffix = ".clientconfig"

// IsClientConfig reports whether name denotes a client config file:
// it ends exactly with ".clientconfig", or ".clientconfig" occurs in
// the name followed only by decimal digits (versioned files such as
// "alice.clientconfig2").
func IsClientConfig(name string) bool {
	if strings.HasSuffix(name, clientConfigSuffix) {
		return true
	}
	idx := strings.Index(name, clientConfigSuffix)
	if idx < 0 {
		return false
	}
	rest := name[idx+len(clientConfigSuffix):]
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsAccountConfig reports whether name denotes an account config file.
// Client configs and generic "*.config" files are excluded; everything
// else in the credential directory is an account config.
func IsAccountConfig(name string) bool {
	if IsClientConfig(name) {
		return false
	}
	if strings.HasSuffix(name, ".config") {
		return false
	}
	return true
}

// classify maps a filename to its FileKind.
func classify(name string) models.FileKind {
	switch {
	case IsClientConfig(name):
		return models.KindClientConfig
	case IsAccountConfig(name):
		return models.KindAccountConfig
	default:
		return models.KindOther
	}
}

// List enumerates the regular files of the credential directory in
// directory order (not sorted; callers sort with the comparators).
func (s *Store) List() ([]models.FileRecord, error) {
	dir, ok := s.Resolve()
	if !ok {
		return nil, models.ErrStoreNotInitialized
	}
	return s.listDir(dir)
}

func (s *Store) listDir(dir string) ([]models.FileRecord, error) {
	// os.ReadDir sorts by name; open the directory directly to keep
	// the order the filesystem reports.
	f, err := os.Open(dir)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Path: dir, Err: err}
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Path: dir, Err: err}
	}

	var records []models.FileRecord
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		rec := models.FileRecord{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Kind: classify(entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			rec.ModTime = info.ModTime()
			rec.AccessTime = atime(info)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListAccountConfigs returns the account config filenames, relative to
// the credential directory.
func (s *Store) ListAccountConfigs() ([]string, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, rec := range records {
		if rec.Kind == models.KindAccountConfig {
			names = append(names, rec.Name)
		}
	}
	return names, nil
}

// ListClientConfigs returns the client config files as absolute paths.
// The asymmetry with ListAccountConfigs (absolute vs relative) is a
// preserved contract difference: client config paths feed directly into
// path-addressed consumers.
func (s *Store) ListClientConfigs() ([]string, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, rec := range records {
		if rec.Kind == models.KindClientConfig {
			paths = append(paths, rec.Path)
		}
	}
	return paths, nil
}
