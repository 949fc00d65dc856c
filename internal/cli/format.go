package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/model"
)

// FormatAmount renders a bare amount with its display currency code, e.g.
// "12.50 USD". Amounts are stored currency-agnostic; the code is applied
// only here, at display time.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}

// FormatSignedAmount renders an entry amount with its direction sign and
// direction color, mirroring how the entry list shows it.
func FormatSignedAmount(amount decimal.Decimal, entryType model.EntryType, currency string) string {
	if entryType == model.EntryTypeExpense {
		return ExpenseStyle.Render("- " + FormatAmount(amount, currency))
	}
	return IncomeStyle.Render("+ " + FormatAmount(amount, currency))
}

// FormatDate renders an entry timestamp in a compact human-readable form.
func FormatDate(t time.Time) string {
	return t.Format("Mon, 2 Jan 06, 3:04PM")
}

// FormatPercent renders a percent delta with sign, one decimal place.
func FormatPercent(percent decimal.NullDecimal) string {
	if !percent.Valid {
		return SubtleStyle.Render("n/a")
	}
	rendered := percent.Decimal.StringFixed(1) + "%"
	if percent.Decimal.IsNegative() {
		return IncomeStyle.Render(rendered)
	}
	return ExpenseStyle.Render("+" + rendered)
}
