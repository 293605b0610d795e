// Package verify handles verification of raw OCR text
package verify

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"merxylab/kpay-verify/cmd/common"
	"merxylab/kpay-verify/cmd/root"
)

// Cmd represents the verify command
var Cmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify raw receipt text",
	Long: `Verify raw OCR text of a payment screenshot against the configured
policy. Reads from --input, or from stdin when no input file is given.`,
	Run: verifyFunc,
}

func verifyFunc(cmd *cobra.Command, args []string) {
	rawText, err := readInput(root.SharedFlags.Input)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to read input text")
	}

	setup, err := common.NewSetup(root.SharedFlags.PolicyFile, root.SharedFlags.LedgerPath, root.Log)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to initialize")
	}
	defer setup.Close()

	err = common.RunVerification(context.Background(), setup, rawText,
		root.SharedFlags.UserID, root.SharedFlags.Username)
	if err != nil {
		root.Log.WithError(err).Fatal("Verification failed")
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
