package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportSummary aggregates per-row classifications for one parsed file.
// Income and expense totals cover non-duplicate rows only.
type ImportSummary struct {
	Total         int             `json:"total"`
	Matched       int             `json:"matched"`
	Unmatched     int             `json:"unmatched"`
	Duplicates    int             `json:"duplicates"`
	Verified      int             `json:"verified"`
	Discrepancies int             `json:"discrepancies"`
	New           int             `json:"new"`
	ParseWarnings int             `json:"parseWarnings"`
	IncomeTotal   decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal  decimal.Decimal `json:"expenseTotal"`
}

// ImportResult is the immutable outcome of one file-parse invocation.
// Selection and per-row overrides are the caller's concern and are kept
// outside this structure.
type ImportResult struct {
	ID           string              `json:"id"`
	FileName     string              `json:"fileName"`
	Format       StatementFormat     `json:"format"`
	Transactions []ParsedTransaction `json:"transactions"`
	Summary      ImportSummary       `json:"summary"`
}

// NewImportResult builds a result with a generated identifier and a summary
// computed from the transaction classifications.
func NewImportResult(fileName string, format StatementFormat, txs []ParsedTransaction, parseWarnings int) *ImportResult {
	s := ImportSummary{
		Total:         len(txs),
		ParseWarnings: parseWarnings,
		IncomeTotal:   decimal.Zero,
		ExpenseTotal:  decimal.Zero,
	}
	for i := range txs {
		tx := &txs[i]
		switch tx.MatchStatus {
		case MatchStatusMatched:
			s.Matched++
		case MatchStatusUnmatched:
			s.Unmatched++
		case MatchStatusDuplicate:
			s.Duplicates++
		}
		if tx.MatchStatus != MatchStatusDuplicate {
			if tx.IsIncome {
				s.IncomeTotal = s.IncomeTotal.Add(tx.Amount)
			} else {
				s.ExpenseTotal = s.ExpenseTotal.Add(tx.Amount)
			}
		}
		if tx.Reconciliation != nil {
			switch tx.Reconciliation.Type {
			case ReconcileVerified:
				s.Verified++
			case ReconcileDiscrepancy:
				s.Discrepancies++
			case ReconcileNew:
				s.New++
			}
		}
	}
	return &ImportResult{
		ID:           uuid.New().String(),
		FileName:     fileName,
		Format:       format,
		Transactions: txs,
		Summary:      s,
	}
}
