// Package txtparser parses the national bank fixed-format text export. The
// statement is a sequence of per-transaction blocks of "Label: value" lines,
// each block terminated by a separator line of dashes or equals signs.
package txtparser

import (
	"regexp"
	"strings"

	"agencycore/bankimport/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var separatorRe = regexp.MustCompile(`^[-=]{5,}\s*$`)

// Label synonyms, lowercased. Matching tolerates surrounding whitespace and
// label case; the first colon splits label from value.
var labelFields = map[string]string{
	"дата": "date", "date": "date",
	"контрагент": "name", "наименование": "name", "counterparty": "name", "name": "name",
	"бин": "bin", "иин": "bin", "бин/иин": "bin", "bin": "bin", "iin": "bin",
	"дебет": "debit", "debit": "debit",
	"кредит": "credit", "credit": "credit",
	"сумма": "amount", "amount": "amount",
	"назначение": "description", "описание": "description",
	"назначение платежа": "description", "purpose": "description", "description": "description",
	"документ": "doc", "№ документа": "doc", "номер документа": "doc", "document": "doc",
	"кнп": "knp", "knp": "knp",
	"валюта": "currency", "currency": "currency",
	"курс": "rate", "rate": "rate",
	"бин плательщика": "payerbin", "плательщик бин": "payerbin", "payer bin": "payerbin",
	"бин получателя": "payeebin", "получатель бин": "payeebin", "payee bin": "payeebin",
}

// LooksLikeStatement reports whether text carries the fixed-format signature:
// at least one block separator and two known field labels. Used by the format
// detector before committing to this grammar.
func LooksLikeStatement(text string) bool {
	var separators, labels int
	for _, line := range strings.Split(text, "\n") {
		if separatorRe.MatchString(line) {
			separators++
			continue
		}
		if label, _, ok := splitLabel(line); ok {
			if _, known := labelFields[label]; known {
				labels++
			}
		}
	}
	return separators >= 1 && labels >= 2
}

// Parser implements the fixed-format grammar.
type Parser struct{}

// New returns a fixed-format statement parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts one StatementLine per well-formed block. Blocks missing the
// minimum fields (date plus a determinable amount) are dropped and counted as
// warnings; parsing never fails on individual records.
func (p *Parser) Parse(text string) ([]models.StatementLine, int, error) {
	var (
		records  []models.StatementLine
		warnings int
		block    []string
		blockAt  int
	)

	lines := strings.Split(text, "\n")
	flush := func() {
		if len(block) == 0 {
			return
		}
		record, labeled, ok := parseBlock(block, blockAt)
		switch {
		case ok:
			records = append(records, record)
		case labeled:
			warnings++
			log.WithFields(logrus.Fields{
				"line":  blockAt,
				"lines": len(block),
			}).Warn("Dropping statement block missing required fields")
		default:
			// Preamble and footer text between separators carries no labels;
			// it is not a record.
		}
		block = nil
	}

	for i, line := range lines {
		if separatorRe.MatchString(line) {
			flush()
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(block) == 0 {
			blockAt = i + 1
		}
		block = append(block, line)
	}
	flush()

	log.WithFields(logrus.Fields{
		"records":  len(records),
		"warnings": warnings,
	}).Info("Parsed fixed-format statement")
	return records, warnings, nil
}

// parseBlock extracts labeled values from one block. A line counts as labeled
// only when its prefix is a known field name; anything else is continuation
// text, since wrapped purpose lines can themselves contain colons. labeled
// reports whether the block carried any known label at all, which separates
// malformed records from plain preamble text.
func parseBlock(block []string, lineNo int) (record models.StatementLine, labeled, ok bool) {
	record = models.StatementLine{LineNo: lineNo}
	for _, line := range block {
		label, value, isLabel := splitLabel(line)
		var field string
		var known bool
		if isLabel {
			field, known = labelFields[label]
		}
		if !known {
			// Purpose text can wrap onto further lines.
			if record.Description != "" {
				record.Description += " " + strings.TrimSpace(line)
			}
			continue
		}
		labeled = true
		switch field {
		case "date":
			record.Date = value
		case "name":
			record.RawName = value
		case "bin":
			record.RawBIN = value
		case "debit":
			record.Debit = value
		case "credit":
			record.Credit = value
		case "amount":
			record.Amount = value
		case "description":
			record.Description = value
		case "doc":
			record.DocumentNo = value
		case "knp":
			record.KNPCode = value
		case "currency":
			record.Currency = value
		case "rate":
			record.ExchangeRate = value
		case "payerbin":
			record.PayerBIN = value
		case "payeebin":
			record.PayeeBIN = value
		}
	}

	if record.Date == "" {
		return record, labeled, false
	}
	if isZeroAmount(record.Debit) && isZeroAmount(record.Credit) && isZeroAmount(record.Amount) {
		return record, labeled, false
	}
	return record, labeled, true
}

func splitLabel(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	if label == "" {
		return "", "", false
	}
	return label, value, true
}

func isZeroAmount(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "0" || s == "0.00" || s == "0,00"
}
