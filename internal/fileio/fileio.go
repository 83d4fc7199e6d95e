// Package fileio implements raw file access for the credential store:
// whole-file reads and writes, existence checks, and removal. It never
// prompts and never touches encryption.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oidcvault/oidcvault/internal/events"
	"github.com/oidcvault/oidcvault/internal/models"
)

// FS performs filesystem operations on absolute paths.
type FS struct {
	logger *events.Logger
}

// New creates an FS. logger may be nil.
func New(logger *events.Logger) *FS {
	if logger == nil {
		logger = events.Discard()
	}
	return &FS{logger: logger.WithField("component", "fileio")}
}

// Read retrieves file contents into a newly owned buffer. A missing
// file surfaces as models.ErrFileNotFound, distinct from other I/O
// failure.
func (f *FS) Read(path string) ([]byte, error) {
	f.logger.WithField("path", path).Debug("Reading file")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.StoreError{Op: "read", Path: path, Err: models.ErrFileNotFound}
		}
		return nil, &models.StoreError{Op: "read", Path: path, Err: err}
	}

	return data, nil
}

// Write saves data to a file, creating or replacing it. The content
// lands via a temporary file and an atomic rename so a crash cannot
// leave a half-written credential file behind.
func (f *FS) Write(path string, data []byte, mode os.FileMode) error {
	f.logger.WithFields(map[string]interface{}{
		"path": path,
		"size": len(data),
	}).Debug("Writing file")

	tempPath := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())

	if err := os.WriteFile(tempPath, data, mode); err != nil {
		return &models.StoreError{Op: "write", Path: path, Err: err}
	}

	// Sync before rename so the rename never publishes empty content.
	if file, err := os.Open(tempPath); err == nil {
		_ = file.Sync()
		file.Close()
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return &models.StoreError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// Append adds a line to the end of a file, creating it if needed.
func (f *FS) Append(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return &models.StoreError{Op: "append", Path: path, Err: err}
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return &models.StoreError{Op: "append", Path: path, Err: err}
	}

	return nil
}

// Exists checks if a file exists.
func (f *FS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &models.StoreError{Op: "stat", Path: path, Err: err}
}

// Remove deletes a file. A file that is already gone is not an error.
func (f *FS) Remove(path string) error {
	f.logger.WithField("path", path).Debug("Removing file")

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &models.StoreError{Op: "remove", Path: path, Err: err}
	}

	return nil
}

// CreateDir creates a directory and any missing parents. Succeeds if
// the directory already exists.
func (f *FS) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return &models.StoreError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// DirExists checks whether path exists and is a directory.
func (f *FS) DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.WithError(err).WithField("path", path).Debug("Stat directory failed")
		}
		return false
	}
	return info.IsDir()
}

// Abs resolves path to an absolute path.
func Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &models.StoreError{Op: "abs", Path: path, Err: err}
	}
	return abs, nil
}
