// Package ledger handles inspection and export of the accepted-payment ledger
package ledger

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"merxylab/kpay-verify/cmd/root"
	"merxylab/kpay-verify/internal/config"
	store "merxylab/kpay-verify/internal/ledger"
)

var outputFile string

// Cmd represents the ledger command
var Cmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the accepted-payment ledger",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accepted payments",
	Run:   listFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export accepted payments to CSV",
	Run:   exportFunc,
}

func init() {
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "payments.csv", "Output CSV file")
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(exportCmd)
}

func openLedger() *store.Ledger {
	path := root.SharedFlags.LedgerPath
	if path == "" {
		cfg, err := config.InitializeConfig()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to load configuration")
		}
		path = cfg.Ledger.Path
	}
	l, err := store.Open(path)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to open ledger")
	}
	return l
}

func listFunc(cmd *cobra.Command, args []string) {
	l := openLedger()
	defer l.Close()

	entries, err := l.List()
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to list ledger entries")
	}

	if len(entries) == 0 {
		fmt.Println("No accepted payments recorded.")
		return
	}

	for _, e := range entries {
		fmt.Printf("%s  %-12s %-16s %s\n", e.AcceptedAt.Format("2006-01-02 15:04:05"), e.Amount, e.Username, e.TransactionID)
	}
	fmt.Printf("%d payment(s)\n", len(entries))
}

func exportFunc(cmd *cobra.Command, args []string) {
	l := openLedger()
	defer l.Close()

	entries, err := l.List()
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to list ledger entries")
	}

	f, err := os.Create(outputFile)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to create output file")
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&entries, f); err != nil {
		root.Log.WithError(err).Fatal("Failed to write CSV")
	}
	root.Log.Infof("Exported %d entries to %s", len(entries), outputFile)
}
