// Package root contains the root command for the application.
package root

import (
	"agencycore/bankimport/internal/aliasstore"
	"agencycore/bankimport/internal/config"
	"agencycore/bankimport/internal/delimparser"
	"agencycore/bankimport/internal/importer"
	"agencycore/bankimport/internal/matcher"
	"agencycore/bankimport/internal/normalizer"
	"agencycore/bankimport/internal/reconcile"
	"agencycore/bankimport/internal/txtparser"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the application configuration, loaded before any command runs.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "bankimport",
		Short: "Import bank statements and reconcile them against the client ledger.",
		Long: `bankimport parses bank statement exports (national fixed-format text and
delimited spreadsheet files), matches each transaction to a known client,
flags duplicate imports and reconciles amounts against existing ledger
entries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Log = config.ConfigureLogging(Cfg)

			// Propagate the configured logger to every pipeline package.
			txtparser.SetLogger(Log)
			delimparser.SetLogger(Log)
			normalizer.SetLogger(Log)
			matcher.SetLogger(Log)
			reconcile.SetLogger(Log)
			importer.SetLogger(Log)
			aliasstore.SetLogger(Log)
		},
	}
)
