package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oidcvault/oidcvault/internal/audit"
	"github.com/oidcvault/oidcvault/internal/config"
	"github.com/oidcvault/oidcvault/internal/crypt"
	"github.com/oidcvault/oidcvault/internal/events"
	"github.com/oidcvault/oidcvault/internal/fileio"
	"github.com/oidcvault/oidcvault/internal/gateway"
	"github.com/oidcvault/oidcvault/internal/passwd"
	"github.com/oidcvault/oidcvault/internal/vaultdir"
)

var rootCmd = &cobra.Command{
	Use:   "oidcvault",
	Short: "Manage encrypted OpenID Connect credential files",
	Long: `oidcvault keeps OpenID Connect account and client credentials in a
private directory, encrypted at rest under a password obtained from a
configured command or an interactive prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if auditStore != nil {
			_ = auditStore.Close()
		}
	},
}

var (
	cfgPath    string
	logLevel   string
	jsonOutput bool

	cfg        *config.Config
	logger     *events.Logger
	files      *fileio.FS
	store      *vaultdir.Store
	gw         *gateway.Gateway
	auditStore *audit.Store
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Config file path (default: config.yaml in ~/.config/oidcvault)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON")
}

func setup() error {
	var err error
	cfg, err = config.NewLoader(cfgPath).Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err = events.NewLogger(events.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	files = fileio.New(logger)
	store = vaultdir.New(cfg.Store, home, files, logger)
	resolver := passwd.NewResolver(cfg.Password, passwd.NewTermPrompter(), logger)
	gw = gateway.New(files, crypt.New(), resolver, logger)

	openAudit()
	return nil
}

// openAudit wires the audit trail when the store exists. A missing or
// unopenable audit database never blocks the command.
func openAudit() {
	if !cfg.Audit.Enabled {
		return
	}

	path := cfg.Audit.Path
	if path == "" {
		dir, ok := store.Resolve()
		if !ok {
			return
		}
		path = filepath.Join(dir, "audit.db")
	}

	var err error
	auditStore, err = audit.NewStore(path, logger)
	if err != nil {
		logger.WithError(err).Warn("Audit trail unavailable")
		auditStore = nil
	}
}

// cmdContext carries the logger and the account being operated on, so
// lower layers can tag their traces.
func cmdContext(account string) context.Context {
	ctx := events.WithLogger(context.Background(), logger)
	if account != "" {
		ctx = events.WithAccount(ctx, account)
	}
	return ctx
}

func recordAudit(op, file string, err error) {
	if auditStore != nil {
		auditStore.Record(op, file, err)
	}
}

// Output helpers.

func printSuccess(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ "+format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		printError("marshal output: %v", err)
		return
	}
	fmt.Println(string(data))
}
