package parser

import (
	"fmt"

	"agencycore/bankimport/internal/delimparser"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/txtparser"
)

// GetParser returns a new instance of the appropriate parser for the given
// statement format. It acts as a factory for StatementParser implementations.
func GetParser(format models.StatementFormat) (StatementParser, error) {
	switch format {
	case models.FormatNationalTXT:
		return txtparser.New(), nil
	case models.FormatDelimited:
		return delimparser.New(), nil
	default:
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}
}
