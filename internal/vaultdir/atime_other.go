//go:build !linux && !darwin

package vaultdir

import (
	"os"
	"time"
)

// Platforms without a portable access-time field fall back to the
// modification time.
func atime(info os.FileInfo) time.Time {
	return info.ModTime()
}
