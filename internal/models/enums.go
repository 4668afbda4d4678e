package models

// MatchStatus classifies how a statement row relates to the client book.
// The set is closed; consumers are expected to handle every value.
type MatchStatus string

const (
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusUnmatched MatchStatus = "unmatched"
	MatchStatusDuplicate MatchStatus = "duplicate"
)

// MatchSource identifies which tier of the matching chain produced a match.
type MatchSource string

const (
	MatchSourceBIN   MatchSource = "bin"
	MatchSourceAlias MatchSource = "alias"
	MatchSourceName  MatchSource = "name"
	MatchSourceNone  MatchSource = "none"
)

// PaymentType is the business classification of a payment, inferred from the
// KNP code when present and from description keywords otherwise.
type PaymentType string

const (
	PaymentTypePrepayment  PaymentType = "prepayment"
	PaymentTypeFull        PaymentType = "full"
	PaymentTypePostpayment PaymentType = "postpayment"
	PaymentTypeRetainer    PaymentType = "retainer"
	PaymentTypeRefund      PaymentType = "refund"
)

// ReconcileType classifies the outcome of matching a bank row against the
// existing ledger.
type ReconcileType string

const (
	ReconcileVerified    ReconcileType = "verified"
	ReconcileDiscrepancy ReconcileType = "discrepancy"
	ReconcileNew         ReconcileType = "new"
)

// StatementFormat identifies the grammar a statement file was parsed with.
type StatementFormat string

const (
	FormatNationalTXT StatementFormat = "national_txt"
	FormatDelimited   StatementFormat = "delimited"
	FormatUnknown     StatementFormat = "unknown"
)
