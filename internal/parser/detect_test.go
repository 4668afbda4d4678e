package parser

import (
	"errors"
	"testing"

	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nationalText = `--------------------------------------------
Дата: 15.01.2025
Контрагент: ТОО Ромашка
Кредит: 150000,00
КНП: 851
--------------------------------------------
`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		text     string
		expected models.StatementFormat
		wantErr  bool
	}{
		{
			name:     "national txt",
			fileName: "statement.txt",
			text:     nationalText,
			expected: models.FormatNationalTXT,
		},
		{
			name:     "csv export",
			fileName: "export.csv",
			text:     "Дата,Контрагент,Сумма\n15.01.2025,Ромашка,100\n",
			expected: models.FormatDelimited,
		},
		{
			name:     "xlsx export with delimited content",
			fileName: "export.xlsx",
			text:     "Дата;Контрагент;Сумма\n15.01.2025;Ромашка;100\n",
			expected: models.FormatDelimited,
		},
		{
			name:     "txt without block markers but with csv header",
			fileName: "statement.txt",
			text:     "Дата,Контрагент,Сумма\n15.01.2025,Ромашка,100\n",
			expected: models.FormatDelimited,
		},
		{
			name:     "unrecognized content",
			fileName: "notes.txt",
			text:     "просто текст\nбез структуры\n",
			wantErr:  true,
		},
		{
			name:     "unsupported binary-ish file",
			fileName: "scan.pdf",
			text:     "%PDF-1.4 ...",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(tt.fileName, tt.text)
			if tt.wantErr {
				require.Error(t, err)
				var ufe *parsererror.UnsupportedFormatError
				assert.True(t, errors.As(err, &ufe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestGetParser(t *testing.T) {
	for _, format := range []models.StatementFormat{models.FormatNationalTXT, models.FormatDelimited} {
		p, err := GetParser(format)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}

	_, err := GetParser(models.FormatUnknown)
	assert.Error(t, err)
}

func TestParsersSatisfyInterface(t *testing.T) {
	p, err := GetParser(models.FormatNationalTXT)
	require.NoError(t, err)

	records, warnings, err := p.Parse(nationalText)
	require.NoError(t, err)
	assert.Equal(t, 0, warnings)
	assert.Len(t, records, 1)
}
