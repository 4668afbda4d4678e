package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation records how a matched bank row relates to the existing
// ledger. LedgerEntryID and LedgerAmount are set only for verified and
// discrepancy outcomes; LedgerAmount preserves the manager-entered value for
// audit while the bank amount is treated as authoritative for display.
type Reconciliation struct {
	Type          ReconcileType   `json:"type"`
	AmountDiffers bool            `json:"amountDiffers"`
	LedgerEntryID string          `json:"ledgerEntryId,omitempty"`
	LedgerAmount  decimal.Decimal `json:"ledgerAmount,omitempty"`
}

// ParsedTransaction is the canonical unit produced by an import run.
// Amount is always non-negative and in the base currency; direction lives in
// IsIncome. Instances are never mutated after the pipeline completes.
type ParsedTransaction struct {
	ID              string          `csv:"ID" json:"id"`
	Date            time.Time       `csv:"Date" json:"date"`
	IsIncome        bool            `csv:"Income" json:"isIncome"`
	Amount          decimal.Decimal `csv:"Amount" json:"amount"`
	AmountOriginal  decimal.Decimal `csv:"OriginalAmount" json:"amountOriginal,omitempty"`
	Currency        string          `csv:"Currency" json:"currency,omitempty"`
	ExchangeRate    decimal.Decimal `csv:"ExchangeRate" json:"exchangeRate,omitempty"`
	ClientNameRaw   string          `csv:"CounterpartyRaw" json:"clientNameRaw"`
	ClientName      string          `csv:"Counterparty" json:"clientName"`
	ClientBIN       string          `csv:"BIN" json:"clientBin,omitempty"`
	DocumentNo      string          `csv:"DocumentNo" json:"documentNumber,omitempty"`
	Description     string          `csv:"Description" json:"description"`
	KNPCode         string          `csv:"KNP" json:"knpCode,omitempty"`
	PaymentType     PaymentType     `csv:"PaymentType" json:"paymentType"`
	MatchStatus     MatchStatus     `csv:"MatchStatus" json:"matchStatus"`
	MatchSource     MatchSource     `csv:"MatchSource" json:"matchSource"`
	MatchedClientID string          `csv:"ClientID" json:"matchedClientId,omitempty"`
	Reconciliation  *Reconciliation `csv:"-" json:"reconciliation,omitempty"`
}

// DateString renders the transaction date in the statement display format.
func (t *ParsedTransaction) DateString() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format("02.01.2006")
}

// IsForeign reports whether the row was settled from a foreign currency.
func (t *ParsedTransaction) IsForeign() bool {
	return t.Currency != "" && !t.ExchangeRate.IsZero()
}
