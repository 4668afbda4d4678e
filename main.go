package main

import (
	"os"

	"agencycore/bankimport/cmd/aliases"
	"agencycore/bankimport/cmd/importcmd"
	"agencycore/bankimport/cmd/root"
)

func init() {
	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(aliases.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
