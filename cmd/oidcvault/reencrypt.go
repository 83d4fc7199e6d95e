package main

import (
	"github.com/spf13/cobra"

	"github.com/oidcvault/oidcvault/internal/gateway"
)

var reencryptCmd = &cobra.Command{
	Use:   "reencrypt <name>",
	Short: "Re-encrypt a stored credential",
	Long: `Reencrypt decrypts a credential file and writes it back encrypted
under a fresh salt and nonce. By default the password that decrypted
the file is reused without prompting again; --new-password prompts for
a different one.`,
	Args: cobra.ExactArgs(1),
	RunE: runReencrypt,
}

var (
	reencryptNew   bool
	reencryptPwCmd string
)

func init() {
	rootCmd.AddCommand(reencryptCmd)

	reencryptCmd.Flags().BoolVar(&reencryptNew, "new-password", false,
		"Prompt for a new password instead of reusing the old one")
	reencryptCmd.Flags().StringVar(&reencryptPwCmd, "pw-cmd", "",
		"Command printing the current password on stdout")
}

func runReencrypt(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := cmdContext(name)
	tgt := gateway.StoreTarget{Store: store, Name: name}

	plaintext, password, err := gw.DecryptWithPassword(ctx, tgt, reencryptPwCmd)
	if err != nil {
		recordAudit("reencrypt", name, err)
		printError("Decrypt %s: %v", name, err)
		return err
	}
	defer plaintext.Wipe()

	opts := gateway.PasswordOptions{}
	if reencryptNew {
		// Drop the old password; the gateway prompts for a new one.
		password.Wipe()
	} else {
		// Ownership of the old password transfers to the gateway.
		opts.Suggested = password
	}

	err = gw.EncryptAndWrite(ctx, tgt, plaintext.Bytes(), name, opts)
	recordAudit("reencrypt", name, err)
	if err != nil {
		printError("Re-encrypt %s: %v", name, err)
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"reencrypted": name})
	} else {
		printSuccess("Re-encrypted %s", name)
	}
	return nil
}
