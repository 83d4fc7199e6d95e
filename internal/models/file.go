package models

import "time"

// FileKind classifies a credential file by its name suffix.
type FileKind int

const (
	// KindOther covers files that are neither account nor client
	// configs, e.g. generic *.config files owned by other subsystems.
	KindOther FileKind = iota
	KindAccountConfig
	KindClientConfig
)

func (k FileKind) String() string {
	switch k {
	case KindAccountConfig:
		return "account"
	case KindClientConfig:
		return "client"
	default:
		return "other"
	}
}

// FileRecord describes one entry of the credential directory. Records
// are query results produced while enumerating the directory; they are
// never persisted.
type FileRecord struct {
	// Name is the filename relative to the credential directory.
	Name string
	// Path is the absolute path, derived from the directory.
	Path string
	Kind FileKind
	// ModTime and AccessTime are zero when metadata was unavailable.
	ModTime    time.Time
	AccessTime time.Time
}
