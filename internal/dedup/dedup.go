// Package dedup flags statement rows that were already committed by a prior
// import of the same or an overlapping statement.
package dedup

import (
	"agencycore/bankimport/internal/dateutils"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/textutils"
)

// Detector checks parsed transactions against the caller-supplied ledger.
// Only ledger entries carrying import audit tags count as prior imports;
// manager-entered entries are reconciliation targets, not duplicates.
type Detector struct {
	docNumbers map[string]struct{}
	imported   []models.LedgerEntry
}

// New indexes the ledger for duplicate lookups.
func New(ledger []models.LedgerEntry) *Detector {
	d := &Detector{docNumbers: make(map[string]struct{})}
	for _, entry := range ledger {
		if !textutils.HasImportTags(entry.Description) {
			continue
		}
		d.imported = append(d.imported, entry)
		if doc := textutils.ExtractDocumentNumber(entry.Description); doc != "" {
			d.docNumbers[doc] = struct{}{}
		}
	}
	return d
}

// IsDuplicate reports whether the transaction was already imported. A
// non-empty document number is authoritative; without one, a previously
// imported entry for the same client with the same date, amount and
// direction counts as the same bank record.
func (d *Detector) IsDuplicate(tx *models.ParsedTransaction) bool {
	if tx.DocumentNo != "" {
		_, ok := d.docNumbers[tx.DocumentNo]
		return ok
	}
	if tx.MatchedClientID == "" {
		return false
	}
	for _, entry := range d.imported {
		if entry.ClientID == tx.MatchedClientID &&
			entry.IsIncome == tx.IsIncome &&
			entry.Amount.Equal(tx.Amount) &&
			dateutils.SameDay(entry.Date, tx.Date) {
			return true
		}
	}
	return false
}
