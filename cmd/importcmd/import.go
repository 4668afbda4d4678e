// Package importcmd implements the import subcommand: parse a statement
// file against the reference data and report the classification result.
package importcmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"agencycore/bankimport/cmd/root"
	"agencycore/bankimport/internal/aliasstore"
	"agencycore/bankimport/internal/importer"
	"agencycore/bankimport/internal/matcher"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/reconcile"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	inputFile   string
	clientsFile string
	ledgerFile  string
	outputFile  string

	// Cmd is the import command.
	Cmd = &cobra.Command{
		Use:   "import",
		Short: "Parse a bank statement and classify its transactions",
		Long: `Parse a bank statement export, match every transaction against the client
list, flag duplicates and reconcile amounts against the ledger. Reference
data is supplied as YAML files; learned aliases persist in the configured
alias store.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Statement file to import (required)")
	Cmd.Flags().StringVarP(&clientsFile, "clients", "c", "", "YAML file with the client list")
	Cmd.Flags().StringVarP(&ledgerFile, "ledger", "l", "", "YAML file with existing ledger entries")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write parsed transactions to this CSV file")
	_ = Cmd.MarkFlagRequired("file")
}

func run(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read statement file: %w", err)
	}

	var clients []models.Client
	if clientsFile != "" {
		if err := readYAML(clientsFile, &clients); err != nil {
			return fmt.Errorf("failed to read client list: %w", err)
		}
	}
	var ledger []models.LedgerEntry
	if ledgerFile != "" {
		if err := readYAML(ledgerFile, &ledger); err != nil {
			return fmt.Errorf("failed to read ledger: %w", err)
		}
	}

	aliases, err := aliasstore.NewYAMLStore(root.Cfg.Aliases.File)
	if err != nil {
		return err
	}

	var company *models.CompanyInfo
	if root.Cfg.Company.BIN != "" || root.Cfg.Company.IBAN != "" {
		company = &models.CompanyInfo{BIN: root.Cfg.Company.BIN, IBAN: root.Cfg.Company.IBAN}
	}

	service := importer.NewService(clients, ledger, aliases, company, importer.Options{
		BaseCurrency: root.Cfg.Currency.Base,
		Matching: matcher.Options{
			FuzzyEnabled: root.Cfg.Matching.FuzzyEnabled,
			MaxDistance:  root.Cfg.Matching.MaxDistance,
		},
		Reconcile: reconcile.Config{
			DateToleranceDays:      root.Cfg.Reconcile.DateToleranceDays,
			AmountTolerancePercent: root.Cfg.Reconcile.AmountTolerancePercent,
		},
	})

	result, err := service.Import(inputFile, content)
	if err != nil {
		root.Log.WithError(err).Error("No transactions recognized")
		return err
	}

	printSummary(result)

	if outputFile != "" {
		if err := writeCSV(result, outputFile); err != nil {
			return fmt.Errorf("failed to write output CSV: %w", err)
		}
		root.Log.WithField("file", outputFile).Info("Wrote parsed transactions")
	}
	return nil
}

func printSummary(result *models.ImportResult) {
	s := result.Summary
	fmt.Printf("File:           %s (%s)\n", result.FileName, result.Format)
	fmt.Printf("Transactions:   %d (income %s, expense %s)\n", s.Total, s.IncomeTotal.StringFixed(2), s.ExpenseTotal.StringFixed(2))
	fmt.Printf("Matched:        %d\n", s.Matched)
	fmt.Printf("Unmatched:      %d\n", s.Unmatched)
	fmt.Printf("Duplicates:     %d\n", s.Duplicates)
	fmt.Printf("Verified:       %d\n", s.Verified)
	fmt.Printf("Discrepancies:  %d\n", s.Discrepancies)
	fmt.Printf("New:            %d\n", s.New)
	if s.ParseWarnings > 0 {
		fmt.Printf("Parse warnings: %d\n", s.ParseWarnings)
	}
}

func writeCSV(result *models.ImportResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("Failed to close output file")
		}
	}()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		if d := root.Cfg.CSV.Delimiter; len(d) == 1 {
			w.Comma = rune(d[0])
		}
		return gocsv.NewSafeCSVWriter(w)
	})
	return gocsv.MarshalFile(&result.Transactions, f)
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
