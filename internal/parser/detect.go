package parser

import (
	"strings"

	"agencycore/bankimport/internal/delimparser"
	"agencycore/bankimport/internal/fileutils"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/parsererror"
	"agencycore/bankimport/internal/txtparser"
)

var delimitedExtensions = map[string]bool{
	"csv": true, "xls": true, "xlsx": true, "tsv": true, "txt": true,
}

// DetectFormat inspects the file name and decoded content and selects a
// statement grammar. A .txt file only qualifies as the national fixed format
// when the block markers are present; a .txt carrying a delimited header row
// is classified as delimited. Failure to match either grammar is the single
// fatal condition of the pipeline.
func DetectFormat(fileName, text string) (models.StatementFormat, error) {
	ext := fileutils.Ext(fileName)

	if ext == "txt" && txtparser.LooksLikeStatement(text) {
		return models.FormatNationalTXT, nil
	}

	if delimitedExtensions[ext] || ext == "" {
		if headerLine, ok := firstNonBlank(text); ok {
			if _, recognized := delimparser.RecognizeHeader(headerLine); recognized {
				return models.FormatDelimited, nil
			}
		}
	}

	return models.FormatUnknown, &parsererror.UnsupportedFormatError{
		FileName: fileName,
		Msg:      "content matches neither the fixed-format nor the delimited grammar",
	}
}

func firstNonBlank(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
	return "", false
}
