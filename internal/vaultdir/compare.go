package vaultdir

import (
	"os"
	"strings"
	"time"
)

// CompareName orders two filenames lexicographically by bytes,
// returning -1, 0 or 1.
func CompareName(a, b string) int {
	return strings.Compare(a, b)
}

// CompareModTime orders two credential-directory filenames by their
// last-modified time. A file whose metadata cannot be read sorts as
// oldest.
func (s *Store) CompareModTime(a, b string) int {
	return compareTimes(s.modTime(a), s.modTime(b))
}

// CompareAccessTime orders two credential-directory filenames by their
// last-accessed time. A file whose metadata cannot be read sorts as
// oldest.
func (s *Store) CompareAccessTime(a, b string) int {
	return compareTimes(s.accessTime(a), s.accessTime(b))
}

func (s *Store) modTime(name string) time.Time {
	info, ok := s.stat(name)
	if !ok {
		return time.Time{}
	}
	return info.ModTime()
}

func (s *Store) accessTime(name string) time.Time {
	info, ok := s.stat(name)
	if !ok {
		return time.Time{}
	}
	return atime(info)
}

func (s *Store) stat(name string) (os.FileInfo, bool) {
	path, err := s.PathFor(name)
	if err != nil {
		return nil, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, true
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
