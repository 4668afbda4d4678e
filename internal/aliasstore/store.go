// Package aliasstore persists learned bank-counterparty aliases: mappings
// from a bank-reported name/BIN pair to an internal client, confirmed once by
// a human and reused on every subsequent import.
package aliasstore

import (
	"strings"

	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/textutils"
)

// Store is the alias-learning contract consumed by the matcher. Put has
// upsert semantics keyed by (bank name, bank BIN); writing an identical row
// is a no-op, so retried writes are safe.
type Store interface {
	// Get resolves a bank-reported name/BIN pair to a client ID. When the
	// exact pair is unknown but the BIN alone is, the BIN-only mapping is
	// returned: bank exports vary name formatting between statements.
	Get(bankName, bankBIN string) (string, bool)
	// Put records a confirmed association.
	Put(bankName, bankBIN, clientID string) error
	// All returns every stored alias.
	All() []models.Alias
}

// aliasKey builds the canonical lookup key for a name/BIN pair.
func aliasKey(bankName, bankBIN string) string {
	return textutils.NormalizeNameKey(bankName) + "|" + textutils.NormalizeBIN(bankBIN)
}

// binKey builds the BIN-only lookup key, empty when the BIN is absent.
func binKey(bankBIN string) string {
	bin := textutils.NormalizeBIN(bankBIN)
	if bin == "" {
		return ""
	}
	return "|" + bin
}

func normalizeAlias(a models.Alias) models.Alias {
	return models.Alias{
		BankName: strings.TrimSpace(a.BankName),
		BankBIN:  textutils.NormalizeBIN(a.BankBIN),
		ClientID: a.ClientID,
	}
}
