package normalizer

import (
	"strings"

	"agencycore/bankimport/internal/models"
)

// knpPaymentTypes maps payment-purpose codes to payment classifications.
// Codes follow the Kazakhstani KNP convention used in the agency's bank
// statements.
var knpPaymentTypes = map[string]models.PaymentType{
	"841": models.PaymentTypePrepayment,
	"851": models.PaymentTypeFull,
	"859": models.PaymentTypeFull,
	"852": models.PaymentTypePostpayment,
	"861": models.PaymentTypeRetainer,
	"322": models.PaymentTypeRefund,
}

// keywordRule is one ordered description heuristic. Earlier rules win, so the
// more specific intents (refund, prepayment) come before the broad ones.
type keywordRule struct {
	paymentType models.PaymentType
	keywords    []string
}

var keywordRules = []keywordRule{
	{models.PaymentTypeRefund, []string{"возврат", "refund", "return"}},
	{models.PaymentTypePrepayment, []string{"предоплат", "аванс", "advance", "prepay"}},
	{models.PaymentTypePostpayment, []string{"постоплат", "доплат", "окончательн", "final settlement", "closing payment"}},
	{models.PaymentTypeRetainer, []string{"абонент", "ретейнер", "подписк", "retainer", "subscription"}},
}

// ClassifyPayment derives the payment type from the KNP code when the code is
// in the known table, then from ordered keyword heuristics over the
// description. Full payment is the default.
func ClassifyPayment(knpCode, description string) models.PaymentType {
	if t, ok := knpPaymentTypes[strings.TrimSpace(knpCode)]; ok {
		return t
	}
	desc := strings.ToLower(description)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.paymentType
			}
		}
	}
	return models.PaymentTypeFull
}
