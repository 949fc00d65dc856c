package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"two decimals kept", "12.50", "USD", "12.50 USD"},
		{"whole number padded", "1200", "EUR", "1200.00 EUR"},
		{"extra precision rounded", "3.14159", "USD", "3.14 USD"},
		{"zero", "0", "CAD", "0.00 CAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSignedAmount_Direction(t *testing.T) {
	amount := decimal.RequireFromString("12.50")

	expense := FormatSignedAmount(amount, "expense", "USD")
	assert.Contains(t, expense, "- 12.50 USD")

	income := FormatSignedAmount(amount, "income", "USD")
	assert.Contains(t, income, "+ 12.50 USD")
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 9, 20, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Fri, 20 Sep 24, 3:04PM", FormatDate(date))
}

func TestFormatPercent(t *testing.T) {
	invalid := decimal.NullDecimal{}
	assert.Contains(t, FormatPercent(invalid), "n/a")

	down := decimal.NullDecimal{Decimal: decimal.RequireFromString("-75"), Valid: true}
	assert.Contains(t, FormatPercent(down), "-75.0%")

	up := decimal.NullDecimal{Decimal: decimal.RequireFromString("12.345"), Valid: true}
	rendered := FormatPercent(up)
	assert.Contains(t, rendered, "12.3%")
	assert.True(t, strings.Contains(rendered, "+12.3%"), "positive deltas carry an explicit sign: %q", rendered)
}
