package config

import (
	"errors"
	"fmt"
)

// Config holds all application configuration.
type Config struct {
	// Store locates the credential directory.
	Store StoreConfig `mapstructure:"store"`

	// Password controls how encryption passwords are obtained.
	Password PasswordConfig `mapstructure:"password"`

	// Log controls diagnostic output.
	Log LogConfig `mapstructure:"log"`

	// Audit controls the operation audit trail.
	Audit AuditConfig `mapstructure:"audit"`
}

// StoreConfig for the credential directory.
type StoreConfig struct {
	// CandidateDirs is the ordered list of directory locations,
	// each relative to the user's home directory. The first that
	// exists on disk is authoritative; Init creates the first whose
	// parent exists. Injected into the resolver so tests can run
	// against a temp directory without touching the environment.
	CandidateDirs []string `mapstructure:"candidate_dirs"`

	// SeedFile is the issuer-config filename created empty on Init.
	// The issuer subsystem owns its contents thereafter.
	SeedFile string `mapstructure:"seed_file"`
}

// PasswordConfig for password resolution.
type PasswordConfig struct {
	// Command, when set, is executed to obtain a password before
	// falling back to an interactive prompt. Its trimmed stdout is
	// the candidate; non-zero exit or empty output means no
	// candidate was produced.
	Command string `mapstructure:"command"`

	// MaxAttempts bounds decryption retries before resolution
	// fails with an exhausted-attempts error.
	MaxAttempts int `mapstructure:"max_attempts"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
	File   string `mapstructure:"file"`   // log file path (empty = stderr)
}

// AuditConfig for the sqlite audit trail.
type AuditConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Path to the audit database. Empty means audit.db inside the
	// resolved credential directory.
	Path string `mapstructure:"path"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			CandidateDirs: []string{".config/oidcvault", ".oidcvault"},
			SeedFile:      "issuer.config",
		},
		Password: PasswordConfig{
			MaxAttempts: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if len(c.Store.CandidateDirs) == 0 {
		return errors.New("store.candidate_dirs must not be empty")
	}

	if c.Store.SeedFile == "" {
		return errors.New("store.seed_file is required")
	}

	if c.Password.MaxAttempts <= 0 {
		return errors.New("password.max_attempts must be positive")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	return nil
}
