package main

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the credential directory",
	Long: `Init creates the credential directory at the primary candidate
location (or the legacy fallback when the primary's parent does not
exist) and seeds it with an empty issuer config. Running init against
an existing directory is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := store.Init()
	if err != nil {
		printError("Initialization failed: %v", err)
		return err
	}

	// The audit trail lives inside the directory we just created.
	openAudit()
	recordAudit("init", dir, nil)

	if jsonOutput {
		printJSON(map[string]interface{}{"directory": dir})
	} else {
		printSuccess("Credential directory ready at %s", dir)
	}
	return nil
}
