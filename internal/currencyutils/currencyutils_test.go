package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1234.56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1 234,56", "1234.56"},
		{"1'234.56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"45050", "45050"},
		{"-2500,00", "-2500"},
		{"150000.00 KZT", "150000"},
		{"12 500 тг", "12500"},
		{"", "0"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, "input=%q", tt.input)
		assert.True(t, decimal.RequireFromString(tt.expected).Equal(got),
			"input=%q got=%s", tt.input, got.String())
	}
}

func TestParseAmountError(t *testing.T) {
	_, err := ParseAmount("abc")
	assert.Error(t, err)
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		original string
		rate     string
		expected string
	}{
		{"whole product", "100", "450.5", "45050"},
		{"rounds half to even down", "1", "2.345", "2.34"},
		{"rounds half to even up", "1", "2.355", "2.36"},
		{"fractional original", "12.5", "450.5", "5631.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(decimal.RequireFromString(tt.original), decimal.RequireFromString(tt.rate))
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got=%s", got.String())
		})
	}
}
