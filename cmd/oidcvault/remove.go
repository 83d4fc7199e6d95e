package main

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a stored credential file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	err := store.RemoveFile(name)
	recordAudit("remove", name, err)
	if err != nil {
		printError("Remove %s: %v", name, err)
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"removed": name})
	} else {
		printSuccess("Removed %s", name)
	}
	return nil
}
