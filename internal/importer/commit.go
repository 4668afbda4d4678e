package importer

import (
	"strings"

	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/textutils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Commit converts reviewed rows into ledger entries and records confirmed
// aliases. selection holds the IDs of the rows the operator accepted;
// duplicates are committed only when explicitly selected. overrides maps a
// transaction ID to an operator-chosen client ID, taking precedence over the
// engine's match.
//
// The returned entries carry the audit tags later imports rely on for
// duplicate detection. Persisting them is the caller's responsibility; the
// alias store is the only state written here, and those writes are
// idempotent.
func (s *Service) Commit(result *models.ImportResult, selection []string, overrides map[string]string) ([]models.LedgerEntry, error) {
	selected := make(map[string]bool, len(selection))
	for _, id := range selection {
		selected[id] = true
	}

	var entries []models.LedgerEntry
	for i := range result.Transactions {
		tx := &result.Transactions[i]
		if !selected[tx.ID] {
			continue
		}

		clientID := tx.MatchedClientID
		if override, ok := overrides[tx.ID]; ok {
			clientID = override
		}
		if clientID == "" {
			log.WithField("transaction", tx.ID).Warn("Skipping selected row without a client")
			continue
		}

		entries = append(entries, models.LedgerEntry{
			ID:          uuid.New().String(),
			ClientID:    clientID,
			Amount:      tx.Amount,
			Date:        tx.Date,
			IsIncome:    tx.IsIncome,
			Description: BuildCommitDescription(tx),
		})

		if s.aliases != nil && tx.ClientNameRaw != "" {
			if err := s.aliases.Put(tx.ClientNameRaw, tx.ClientBIN, clientID); err != nil {
				return nil, err
			}
		}
	}

	log.WithFields(logrus.Fields{
		"file":      result.FileName,
		"committed": len(entries),
	}).Info("Commit prepared")
	return entries, nil
}

// BuildCommitDescription appends the audit tags to the bank description in
// fixed order: document number, original currency amount, KNP code,
// direction marker.
func BuildCommitDescription(tx *models.ParsedTransaction) string {
	parts := []string{tx.Description}
	if tx.DocumentNo != "" {
		parts = append(parts, textutils.DocumentTag(tx.DocumentNo))
	}
	if tx.IsForeign() {
		parts = append(parts, textutils.OriginalAmountTag(tx.AmountOriginal, tx.Currency, tx.ExchangeRate))
	}
	if tx.KNPCode != "" {
		parts = append(parts, textutils.KNPTag(tx.KNPCode))
	}
	parts = append(parts, textutils.DirectionTag(tx.IsIncome))
	return strings.TrimSpace(strings.Join(parts, " "))
}
