package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oidcvault/oidcvault/internal/vaultdir"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored account or client configurations",
	Example: `  oidcvault list
  oidcvault list --clients
  oidcvault list --sort modified`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listClients bool
	listSort    string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listClients, "clients", false,
		"List client configs (absolute paths) instead of account configs")
	listCmd.Flags().StringVar(&listSort, "sort", "name",
		"Sort order: name, modified, accessed")
}

func runList(cmd *cobra.Command, args []string) error {
	var names []string
	var err error
	if listClients {
		names, err = store.ListClientConfigs()
	} else {
		names, err = store.ListAccountConfigs()
	}
	if err != nil {
		printError("List failed: %v", err)
		return err
	}

	if err := sortNames(names); err != nil {
		return err
	}

	recordAudit("list", "", nil)

	if jsonOutput {
		printJSON(map[string]interface{}{"files": names})
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func sortNames(names []string) error {
	// Client configs come back as absolute paths; the store comparators
	// take names relative to the credential directory, so time sorts
	// go through the basename.
	key := func(s string) string {
		if listClients {
			return filepath.Base(s)
		}
		return s
	}

	switch listSort {
	case "name":
		sort.SliceStable(names, func(i, j int) bool {
			return vaultdir.CompareName(names[i], names[j]) < 0
		})
	case "modified":
		sort.SliceStable(names, func(i, j int) bool {
			return store.CompareModTime(key(names[i]), key(names[j])) < 0
		})
	case "accessed":
		sort.SliceStable(names, func(i, j int) bool {
			return store.CompareAccessTime(key(names[i]), key(names[j])) < 0
		})
	default:
		return fmt.Errorf("unknown sort order: %q", listSort)
	}
	return nil
}
