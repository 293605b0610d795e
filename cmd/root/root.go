// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"merxylab/kpay-verify/internal/config"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	PolicyFile string
	LedgerPath string
	UserID     string
	Username   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "kpay-verify",
		Short: "Verify mobile-payment screenshots against a recipient policy.",
		Long: `kpay-verify parses the OCR text of a payment screenshot, validates the
extracted receipt against a configured recipient and minimum amount, and
enforces that each transaction id is accepted at most once.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to kpay-verify!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (raw text or image)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.PolicyFile, "policy", "p", "", "Policy YAML file (overrides configured policy)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.LedgerPath, "ledger", "l", "", "Ledger database path (overrides configured path)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.UserID, "user", "u", "", "Submitting user id, recorded on acceptance")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Username, "username", "n", "", "Submitting username, recorded on acceptance")
}
