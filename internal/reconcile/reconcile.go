// Package reconcile matches bank-reported transactions against previously
// recorded ledger entries and classifies each as verified, discrepancy or
// new. Discrepancies are flagged for human resolution, never auto-applied.
package reconcile

import (
	"agencycore/bankimport/internal/dateutils"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/textutils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Config holds the candidate tolerances. Dates qualify when in the same
// calendar month or within DateToleranceDays; amounts qualify within
// AmountTolerancePercent of the bank amount.
type Config struct {
	DateToleranceDays      int
	AmountTolerancePercent float64
}

// DefaultConfig mirrors the behavior observed against production data:
// same-month window with a five-day spillover, ten percent amount tolerance.
func DefaultConfig() Config {
	return Config{DateToleranceDays: 5, AmountTolerancePercent: 10}
}

// Engine reconciles matched transactions against the ledger. Only
// manager-entered entries (no import audit tags) are candidates.
type Engine struct {
	cfg        Config
	candidates []models.LedgerEntry
}

// New builds an Engine over the caller-supplied ledger.
func New(cfg Config, ledger []models.LedgerEntry) *Engine {
	e := &Engine{cfg: cfg}
	for _, entry := range ledger {
		if !textutils.HasImportTags(entry.Description) {
			e.candidates = append(e.candidates, entry)
		}
	}
	return e
}

// Reconcile classifies one matched, non-duplicate transaction and sets its
// Reconciliation field. Among qualifying candidates the smallest absolute
// amount difference wins, tie-broken by closest date.
func (e *Engine) Reconcile(tx *models.ParsedTransaction) {
	if tx.MatchStatus != models.MatchStatusMatched {
		return
	}

	var (
		best     *models.LedgerEntry
		bestDiff decimal.Decimal
		bestDays int
	)
	for i := range e.candidates {
		entry := &e.candidates[i]
		if entry.ClientID != tx.MatchedClientID || entry.IsIncome != tx.IsIncome {
			continue
		}
		if !e.dateQualifies(entry, tx) {
			continue
		}
		diff := entry.Amount.Sub(tx.Amount).Abs()
		if !e.amountQualifies(diff, tx.Amount) {
			continue
		}
		days := dateutils.DaysApart(entry.Date, tx.Date)
		if best == nil || diff.LessThan(bestDiff) || (diff.Equal(bestDiff) && days < bestDays) {
			best, bestDiff, bestDays = entry, diff, days
		}
	}

	if best == nil {
		tx.Reconciliation = &models.Reconciliation{Type: models.ReconcileNew}
		return
	}

	if bestDiff.IsZero() {
		tx.Reconciliation = &models.Reconciliation{
			Type:          models.ReconcileVerified,
			LedgerEntryID: best.ID,
			LedgerAmount:  best.Amount,
		}
		return
	}

	// Bank value wins for display; the ledger amount is preserved for audit
	// until a human applies the reconciliation.
	tx.Reconciliation = &models.Reconciliation{
		Type:          models.ReconcileDiscrepancy,
		AmountDiffers: true,
		LedgerEntryID: best.ID,
		LedgerAmount:  best.Amount,
	}
	log.WithFields(logrus.Fields{
		"client": tx.MatchedClientID,
		"bank":   tx.Amount.String(),
		"ledger": best.Amount.String(),
	}).Info("Amount discrepancy flagged for review")
}

func (e *Engine) dateQualifies(entry *models.LedgerEntry, tx *models.ParsedTransaction) bool {
	return dateutils.SameMonth(entry.Date, tx.Date) ||
		dateutils.WithinDays(entry.Date, tx.Date, e.cfg.DateToleranceDays)
}

func (e *Engine) amountQualifies(diff, bankAmount decimal.Decimal) bool {
	if bankAmount.IsZero() {
		return diff.IsZero()
	}
	tolerance := bankAmount.Mul(decimal.NewFromFloat(e.cfg.AmountTolerancePercent / 100))
	return diff.LessThanOrEqual(tolerance)
}
