// Package parser defines the shared statement-parser contract, per-format
// parser selection and raw-file format detection.
package parser

import (
	"agencycore/bankimport/internal/models"
)

// StatementParser is implemented by every format grammar. Parse turns
// normalized statement text into intermediate records plus a count of
// dropped records; it returns an error only when the whole file is
// uninterpretable under the grammar.
type StatementParser interface {
	Parse(text string) ([]models.StatementLine, int, error)
}
