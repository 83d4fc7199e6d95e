package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oidcvault/oidcvault/internal/gateway"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Decrypt a stored credential and print it",
	Long: `Show decrypts a credential file and writes the plaintext to stdout.
By default <name> is resolved inside the credential directory; with
--path it is treated as a filesystem path.`,
	Example: `  oidcvault show alice
  oidcvault show --path /mnt/backup/alice`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showPath  bool
	showPwCmd string
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showPath, "path", false,
		"Treat the argument as a filesystem path, not a stored name")
	showCmd.Flags().StringVar(&showPwCmd, "pw-cmd", "",
		"Command printing the decryption password on stdout")
}

func runShow(cmd *cobra.Command, args []string) error {
	var tgt gateway.Target
	if showPath {
		tgt = gateway.PathTarget(args[0])
	} else {
		tgt = gateway.StoreTarget{Store: store, Name: args[0]}
	}

	plaintext, err := gw.Decrypt(cmdContext(args[0]), tgt, showPwCmd)
	recordAudit("decrypt", args[0], err)
	if err != nil {
		printError("Decrypt %s: %v", args[0], err)
		return err
	}
	defer plaintext.Wipe()

	_, err = os.Stdout.Write(plaintext.Bytes())
	return err
}
