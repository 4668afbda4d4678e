package models

// StatementLine is the format-independent field set extracted from one
// statement record before normalization. All values are kept as raw strings;
// the normalizer owns date/amount interpretation so both grammars share one
// conversion path.
type StatementLine struct {
	Date          string // as printed in the statement
	RawName       string // counterparty label as printed
	RawBIN        string // counterparty tax identifier, may be empty
	Debit         string // populated when the format splits debit/credit
	Credit        string
	Amount        string // single amount column, possibly signed
	DirectionHint string // "income"/"expense" from an explicit type column
	Currency      string // empty or base currency for domestic lines
	ExchangeRate  string // present for foreign-currency lines
	Description   string
	DocumentNo    string
	KNPCode       string
	PayerBIN      string // party identifiers for direction inference
	PayeeBIN      string
	LineNo        int // first source line of the record, for diagnostics
}
