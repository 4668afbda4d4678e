// Package normalizer converts intermediate statement records into canonical
// parsed transactions: direction resolution, counterparty name cleaning,
// payment-type classification and base-currency settlement.
package normalizer

import (
	"fmt"
	"strings"

	"agencycore/bankimport/internal/currencyutils"
	"agencycore/bankimport/internal/dateutils"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/parsererror"
	"agencycore/bankimport/internal/textutils"

	"github.com/google/uuid"
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

// Normalizer carries the per-import context needed to canonicalize records.
type Normalizer struct {
	baseCurrency string
	company      *models.CompanyInfo
}

// New returns a Normalizer for the given base currency. company may be nil;
// without it direction can only come from explicit fields or an amount sign.
func New(baseCurrency string, company *models.CompanyInfo) *Normalizer {
	if baseCurrency == "" {
		baseCurrency = "KZT"
	}
	return &Normalizer{baseCurrency: baseCurrency, company: company}
}

// Normalize converts one statement record into a ParsedTransaction. The
// returned transaction is unmatched; matching, duplicate detection and
// reconciliation run later stages. An error means the record cannot satisfy
// the minimum contract (date plus determinable amount and direction) and
// should be counted as a parse warning, not aborted on.
func (n *Normalizer) Normalize(line models.StatementLine) (models.ParsedTransaction, error) {
	var tx models.ParsedTransaction

	date, err := dateutils.ParseDate(line.Date)
	if err != nil {
		return tx, &parsererror.ParseError{Line: line.LineNo, Field: "date", Value: line.Date, Err: err}
	}

	amount, isIncome, err := n.resolveAmount(line)
	if err != nil {
		return tx, err
	}

	tx = models.ParsedTransaction{
		ID:            uuid.New().String(),
		Date:          date,
		IsIncome:      isIncome,
		ClientNameRaw: strings.TrimSpace(line.RawName),
		ClientName:    textutils.CleanCounterpartyName(line.RawName),
		ClientBIN:     textutils.NormalizeBIN(line.RawBIN),
		DocumentNo:    strings.TrimSpace(line.DocumentNo),
		Description:   strings.TrimSpace(line.Description),
		KNPCode:       strings.TrimSpace(line.KNPCode),
		MatchStatus:   models.MatchStatusUnmatched,
		MatchSource:   models.MatchSourceNone,
	}

	currency := strings.ToUpper(strings.TrimSpace(line.Currency))
	if currency != "" && currency != n.baseCurrency {
		rate, rateErr := currencyutils.ParseAmount(line.ExchangeRate)
		if rateErr != nil || rate.Sign() <= 0 {
			return tx, &parsererror.ParseError{
				Line: line.LineNo, Field: "exchange_rate", Value: line.ExchangeRate,
				Err: fmt.Errorf("foreign currency %s without usable rate", currency),
			}
		}
		tx.AmountOriginal = amount
		tx.Currency = currency
		tx.ExchangeRate = rate
		tx.Amount = currencyutils.Settle(amount, rate)
	} else {
		tx.Amount = amount.RoundBank(2)
	}

	tx.PaymentType = ClassifyPayment(tx.KNPCode, tx.Description)

	log.WithFields(logrus.Fields{
		"date":   tx.DateString(),
		"amount": tx.Amount.String(),
		"income": tx.IsIncome,
	}).Debug("Normalized statement record")
	return tx, nil
}

// resolveAmount determines the unsigned amount and direction. Precedence:
// explicit debit/credit split, then an explicit type column, then the amount
// sign, then payer/payee identity against our own company record.
func (n *Normalizer) resolveAmount(line models.StatementLine) (decimal.Decimal, bool, error) {
	debit, err := currencyutils.ParseAmount(line.Debit)
	if err != nil {
		return decimal.Zero, false, &parsererror.ParseError{Line: line.LineNo, Field: "debit", Value: line.Debit, Err: err}
	}
	credit, err := currencyutils.ParseAmount(line.Credit)
	if err != nil {
		return decimal.Zero, false, &parsererror.ParseError{Line: line.LineNo, Field: "credit", Value: line.Credit, Err: err}
	}

	if credit.Sign() > 0 {
		return credit, true, nil
	}
	if debit.Sign() > 0 {
		return debit, false, nil
	}

	amount, err := currencyutils.ParseAmount(line.Amount)
	if err != nil {
		return decimal.Zero, false, &parsererror.ParseError{Line: line.LineNo, Field: "amount", Value: line.Amount, Err: err}
	}
	if amount.Sign() == 0 {
		return decimal.Zero, false, &parsererror.ParseError{
			Line: line.LineNo, Field: "amount", Value: line.Amount,
			Err: fmt.Errorf("no non-zero amount"),
		}
	}

	switch line.DirectionHint {
	case "income":
		return amount.Abs(), true, nil
	case "expense":
		return amount.Abs(), false, nil
	}

	if amount.Sign() < 0 {
		return amount.Abs(), false, nil
	}

	// Unsigned single amount: fall back to party identity.
	if n.company != nil && n.company.BIN != "" {
		payer := textutils.NormalizeBIN(line.PayerBIN)
		payee := textutils.NormalizeBIN(line.PayeeBIN)
		own := textutils.NormalizeBIN(n.company.BIN)
		if payer == own && payer != "" {
			return amount, false, nil
		}
		if payee == own && payee != "" {
			return amount, true, nil
		}
	}

	// A positive single amount with no other signal reads as income; bank
	// exports that list expenses do so with signs or a debit column.
	return amount, true, nil
}
