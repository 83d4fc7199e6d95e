package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent store operations from the audit trail",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var logLimit int

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20,
		"Number of entries to show")
}

func runLog(cmd *cobra.Command, args []string) error {
	if auditStore == nil {
		printInfo("Audit trail is not available")
		return nil
	}

	entries, err := auditStore.Recent(logLimit)
	if err != nil {
		printError("Read audit log: %v", err)
		return err
	}

	if jsonOutput {
		printJSON(entries)
		return nil
	}

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "failed: " + e.Detail
		}
		fmt.Printf("%s  %-10s %-20s %s\n",
			e.Time.Format(time.RFC3339), e.Op, e.File, status)
	}
	return nil
}
