package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oidcvault/oidcvault/internal/gateway"
	"github.com/oidcvault/oidcvault/internal/secret"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Encrypt content into the credential directory",
	Long: `Add encrypts content under a password and stores it as <name> in the
credential directory. Content comes from --file or stdin. The password
is taken from --pw-cmd, the configured password command, or an
interactive prompt, in that order.`,
	Example: `  oidcvault add alice --file alice.json
  cat alice.json | oidcvault add alice
  oidcvault add alice --file alice.json --pw-cmd "pass show oidc/alice"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addFile  string
	addPwCmd string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addFile, "file", "f", "",
		"Read content from this file instead of stdin")
	addCmd.Flags().StringVar(&addPwCmd, "pw-cmd", "",
		"Command printing the encryption password on stdout")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	plaintext, err := readContent()
	if err != nil {
		printError("Read content: %v", err)
		return err
	}
	defer secret.Wipe(plaintext)

	err = gw.EncryptAndWrite(cmdContext(name),
		gateway.StoreTarget{Store: store, Name: name},
		plaintext, name,
		gateway.PasswordOptions{Command: addPwCmd})
	recordAudit("encrypt", name, err)
	if err != nil {
		printError("Encrypt %s: %v", name, err)
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"stored": name})
	} else {
		printSuccess("Stored %s", name)
	}
	return nil
}

func readContent() ([]byte, error) {
	if addFile != "" {
		return os.ReadFile(addFile)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no content on stdin")
	}
	return data, nil
}
