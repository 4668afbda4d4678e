// Package aliases implements the aliases subcommand for inspecting and
// editing the learned counterparty aliases.
package aliases

import (
	"fmt"

	"agencycore/bankimport/cmd/root"
	"agencycore/bankimport/internal/aliasstore"

	"github.com/spf13/cobra"
)

var (
	addName   string
	addBIN    string
	addClient string

	// Cmd is the aliases command.
	Cmd = &cobra.Command{
		Use:   "aliases",
		Short: "List learned counterparty aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := aliasstore.NewYAMLStore(root.Cfg.Aliases.File)
			if err != nil {
				return err
			}
			all := store.All()
			if len(all) == 0 {
				fmt.Println("No aliases learned yet.")
				return nil
			}
			for _, a := range all {
				fmt.Printf("%-40s %-14s -> %s\n", a.BankName, a.BankBIN, a.ClientID)
			}
			return nil
		},
	}

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Record a confirmed alias",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := aliasstore.NewYAMLStore(root.Cfg.Aliases.File)
			if err != nil {
				return err
			}
			if err := store.Put(addName, addBIN, addClient); err != nil {
				return err
			}
			root.Log.WithField("name", addName).Info("Alias recorded")
			return nil
		},
	}
)

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Bank-reported counterparty name (required)")
	addCmd.Flags().StringVar(&addBIN, "bin", "", "Bank-reported BIN/IIN")
	addCmd.Flags().StringVar(&addClient, "client", "", "Internal client ID (required)")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("client")
	Cmd.AddCommand(addCmd)
}
