// Package delimparser parses delimited spreadsheet exports (CSV and
// tab/semicolon separated text). The header row determines the column layout
// by matching known header synonyms; the delimiter is auto-detected from the
// header row.
package delimparser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/parsererror"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var delimiters = []rune{';', ',', '\t'}

// Header synonyms, lowercased, per canonical field. Exports come with
// Russian, Kazakh-practice and English headers depending on the bank cabinet
// language.
var headerFields = map[string]string{
	"дата": "date", "дата операции": "date", "date": "date",
	"контрагент": "name", "наименование": "name", "клиент": "name",
	"counterparty": "name", "client": "name", "name": "name",
	"бин": "bin", "иин": "bin", "бин/иин": "bin", "bin": "bin", "iin": "bin",
	"дебет": "debit", "расход": "debit", "debit": "debit",
	"кредит": "credit", "приход": "credit", "credit": "credit",
	"сумма": "amount", "amount": "amount", "sum": "amount",
	"тип": "type", "направление": "type", "type": "type", "direction": "type",
	"валюта": "currency", "currency": "currency",
	"курс": "rate", "rate": "rate", "exchange rate": "rate",
	"назначение": "description", "назначение платежа": "description",
	"описание": "description", "description": "description", "purpose": "description",
	"документ": "doc", "№ документа": "doc", "номер документа": "doc",
	"document": "doc", "doc": "doc",
	"кнп": "knp", "knp": "knp",
}

// Markers an explicit type column may carry.
var incomeMarkers = map[string]bool{
	"приход": true, "поступление": true, "доход": true,
	"income": true, "credit": true, "in": true,
}
var expenseMarkers = map[string]bool{
	"расход": true, "списание": true, "оплата": true,
	"expense": true, "debit": true, "out": true,
}

// RecognizeHeader reports whether a line reads as a statement header row and
// with which delimiter. At least three known columns are required, which
// keeps free text from being mistaken for a header.
func RecognizeHeader(line string) (rune, bool) {
	for _, delim := range delimiters {
		cells := splitHeaderLine(line, delim)
		if len(cells) < 2 {
			continue
		}
		known := 0
		for _, cell := range cells {
			if _, ok := headerFields[normalizeHeader(cell)]; ok {
				known++
			}
		}
		if known >= 3 {
			return delim, true
		}
	}
	return 0, false
}

// Parser implements the delimited grammar.
type Parser struct{}

// New returns a delimited statement parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads the header row and then one StatementLine per data row. Rows
// that cannot yield the minimum fields are dropped and counted as warnings.
func (p *Parser) Parse(text string) ([]models.StatementLine, int, error) {
	headerLine, offset := firstNonBlankLine(text)
	delim, ok := RecognizeHeader(headerLine)
	if !ok {
		return nil, 0, &parsererror.UnsupportedFormatError{Msg: "no recognizable header row"}
	}

	// Feed the reader from the header row onward; csv.Reader silently skips
	// blank lines, so record-count skipping would misalign.
	body := strings.Join(strings.Split(text, "\n")[offset:], "\n")
	reader := csv.NewReader(strings.NewReader(body))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, &parsererror.UnsupportedFormatError{Msg: "header row unreadable"}
	}

	columns := make(map[int]string, len(header))
	for i, cell := range header {
		if field, known := headerFields[normalizeHeader(cell)]; known {
			columns[i] = field
		}
	}

	var (
		records  []models.StatementLine
		warnings int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings++
			lineNo := offset
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				lineNo += parseErr.Line
			}
			log.WithError(err).WithField("line", lineNo).Warn("Dropping unreadable statement row")
			continue
		}
		if isBlankRow(row) {
			continue
		}
		// FieldPos reports positions within body, which starts at the header
		// line; blank lines and multi-line quoted fields shift records off a
		// simple per-read counter.
		rowLine, _ := reader.FieldPos(0)
		lineNo := offset + rowLine
		record, ok := parseRow(row, columns, lineNo)
		if ok {
			records = append(records, record)
		} else {
			warnings++
			log.WithField("line", lineNo).Warn("Dropping statement row missing required fields")
		}
	}

	log.WithFields(logrus.Fields{
		"records":  len(records),
		"warnings": warnings,
	}).Info("Parsed delimited statement")
	return records, warnings, nil
}

func parseRow(row []string, columns map[int]string, lineNo int) (models.StatementLine, bool) {
	record := models.StatementLine{LineNo: lineNo}
	for i, cell := range row {
		field, mapped := columns[i]
		if !mapped {
			continue
		}
		value := strings.TrimSpace(cell)
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
		case "type":
			record.DirectionHint = directionHint(value)
		case "currency":
			record.Currency = value
		case "rate":
			record.ExchangeRate = value
		case "description":
			record.Description = value
		case "doc":
			record.DocumentNo = value
		case "knp":
			record.KNPCode = value
		}
	}

	if record.Date == "" {
		return record, false
	}
	if record.Debit == "" && record.Credit == "" && record.Amount == "" {
		return record, false
	}
	return record, true
}

func directionHint(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	if incomeMarkers[key] {
		return "income"
	}
	if expenseMarkers[key] {
		return "expense"
	}
	return ""
}

func normalizeHeader(cell string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(cell), "\uFEFF\"'"))
}

// splitHeaderLine splits a header candidate on delim with minimal quote
// awareness; full quoting rules apply only during row parsing.
func splitHeaderLine(line string, delim rune) []string {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delim
	reader.LazyQuotes = true
	cells, err := reader.Read()
	if err != nil {
		return strings.Split(line, string(delim))
	}
	return cells
}

func firstNonBlankLine(text string) (string, int) {
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line, i
		}
	}
	return "", 0
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
