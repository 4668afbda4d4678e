// Package models provides the value types shared by the statement import
// pipeline: the intermediate parse record, the canonical parsed transaction,
// and the collaborator inputs supplied by the surrounding application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is one row of the caller-supplied counterparty list.
type Client struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Company string `yaml:"company" json:"company"`
	BIN     string `yaml:"bin" json:"bin"`
}

// LedgerEntry is one row of the caller-supplied existing-transaction list.
// Entries committed by a prior import carry bracketed audit tags in the
// description; manager-entered entries do not.
type LedgerEntry struct {
	ID          string          `yaml:"id" json:"id"`
	ClientID    string          `yaml:"client_id" json:"clientId"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Date        time.Time       `yaml:"date" json:"date"`
	IsIncome    bool            `yaml:"is_income" json:"isIncome"`
	Description string          `yaml:"description" json:"description"`
}

// CompanyInfo identifies the organization's own side of a two-party bank
// line. It is optional; without it direction can only come from explicit
// debit/credit fields or an amount sign.
type CompanyInfo struct {
	BIN  string `yaml:"bin" json:"bin"`
	IBAN string `yaml:"iban" json:"iban"`
}

// Alias is a learned bank-name/BIN to client mapping, confirmed once by a
// human and reused on subsequent imports.
type Alias struct {
	BankName string `yaml:"bank_name" json:"bankName"`
	BankBIN  string `yaml:"bank_bin" json:"bankBin"`
	ClientID string `yaml:"client_id" json:"clientId"`
}
