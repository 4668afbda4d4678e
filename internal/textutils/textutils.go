// Package textutils provides counterparty-name cleaning and the bracketed
// audit-tag conventions used in ledger descriptions.
package textutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Organizational-form tokens stripped before name matching. Covers the
// Kazakhstani registry forms plus the common English equivalents seen in
// foreign-currency statements.
var legalFormTokens = map[string]struct{}{
	"тоо": {}, "ип": {}, "ао": {}, "оао": {}, "зао": {}, "пао": {},
	"ооо": {}, "чп": {}, "тдо": {}, "кх": {}, "пк": {}, "гу": {}, "гкп": {},
	"llp": {}, "llc": {}, "ltd": {}, "jsc": {}, "inc": {}, "gmbh": {},
}

var (
	quoteChars   = strings.NewReplacer("«", " ", "»", " ", "\"", " ", "'", " ", "“", " ", "”", " ")
	spaceRe      = regexp.MustCompile(`\s+`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	docTagRe     = regexp.MustCompile(`\[док\.№\s*([^\]\s]+)\]`)
	anyImportTag = regexp.MustCompile(`\[(док\.№|вал\.|КНП|банк:)`)
)

// CleanCounterpartyName strips quotes and organizational-form tokens and
// collapses whitespace. The result keeps the original case and is suitable
// for display; use NormalizeNameKey for matching.
func CleanCounterpartyName(raw string) string {
	s := quoteChars.Replace(raw)
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,"))
		if _, drop := legalFormTokens[key]; drop {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		// A name made entirely of form tokens stays as-is.
		return spaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	}
	return strings.Join(kept, " ")
}

// NormalizeNameKey returns the lowercase matching key for a counterparty
// name.
func NormalizeNameKey(raw string) string {
	return strings.ToLower(CleanCounterpartyName(raw))
}

// NormalizeBIN reduces a tax identifier to its digits. Kazakhstani BIN/IIN
// values are 12 digits, but no length is enforced here: partial identifiers
// still participate in exact comparison.
func NormalizeBIN(raw string) string {
	return nonDigitRe.ReplaceAllString(raw, "")
}

// DocumentTag renders the bracketed document-number marker appended to a
// committed ledger description.
func DocumentTag(docNo string) string {
	return fmt.Sprintf("[док.№ %s]", docNo)
}

// OriginalAmountTag renders the foreign-currency audit marker.
func OriginalAmountTag(amount decimal.Decimal, currency string, rate decimal.Decimal) string {
	return fmt.Sprintf("[вал. %s %s x %s]", amount.StringFixed(2), currency, rate.String())
}

// KNPTag renders the payment-purpose-code marker.
func KNPTag(code string) string {
	return fmt.Sprintf("[КНП %s]", code)
}

// DirectionTag renders the bank-direction marker.
func DirectionTag(isIncome bool) string {
	if isIncome {
		return "[банк: поступление]"
	}
	return "[банк: списание]"
}

// ExtractDocumentNumber returns the document number embedded in a ledger
// description by a prior import commit, or "" when none is present.
func ExtractDocumentNumber(description string) string {
	m := docTagRe.FindStringSubmatch(description)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// HasImportTags reports whether a ledger description carries any audit tag,
// i.e. whether the entry was committed by a prior import rather than entered
// by a manager.
func HasImportTags(description string) bool {
	return anyImportTag.MatchString(description)
}
