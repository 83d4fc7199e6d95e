package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oidcvault/oidcvault/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, []string{".config/oidcvault", ".oidcvault"}, cfg.Store.CandidateDirs)
	assert.Equal(t, "issuer.config", cfg.Store.SeedFile)
	assert.Equal(t, 3, cfg.Password.MaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Audit.Enabled)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			modify: func(c *config.Config) {},
		},
		{
			name: "no candidate dirs",
			modify: func(c *config.Config) {
				c.Store.CandidateDirs = nil
			},
			wantErr: "candidate_dirs",
		},
		{
			name: "missing seed file",
			modify: func(c *config.Config) {
				c.Store.SeedFile = ""
			},
			wantErr: "seed_file",
		},
		{
			name: "zero max attempts",
			modify: func(c *config.Config) {
				c.Password.MaxAttempts = 0
			},
			wantErr: "max_attempts",
		},
		{
			name: "invalid log level",
			modify: func(c *config.Config) {
				c.Log.Level = "loud"
			},
			wantErr: "log level",
		},
		{
			name: "invalid log format",
			modify: func(c *config.Config) {
				c.Log.Format = "xml"
			},
			wantErr: "log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoaderDefaultsWithoutFile(t *testing.T) {
	cfg, err := config.NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	assert.Error(t, err, "an explicitly named missing file is an error")

	cfg, err = config.NewLoader("").Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Store, cfg.Store)
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  candidate_dirs:
    - .config/testvault
  seed_file: seed.config
password:
  command: pass show oidc
  max_attempts: 5
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{".config/testvault"}, cfg.Store.CandidateDirs)
	assert.Equal(t, "seed.config", cfg.Store.SeedFile)
	assert.Equal(t, "pass show oidc", cfg.Password.Command)
	assert.Equal(t, 5, cfg.Password.MaxAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoaderEnvOverride(t *testing.T) {
	t.Setenv("OIDCVAULT_LOG_LEVEL", "error")
	t.Setenv("OIDCVAULT_PASSWORD_MAX_ATTEMPTS", "7")

	cfg, err := config.NewLoader("").Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Password.MaxAttempts)
}

func TestLoaderRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0600))

	_, err := config.NewLoader(path).Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
