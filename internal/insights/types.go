package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MonthGrouping selects the bucket key for month-based series.
type MonthGrouping int

const (
	// GroupByMonthOfYear buckets by month number only (1-12). Entries from
	// different years sharing a month number merge into one bucket. This is
	// the legacy contract and the default.
	GroupByMonthOfYear MonthGrouping = iota
	// GroupByYearMonth buckets by year and month, keeping years distinct.
	GroupByYearMonth
)

// WeekdayOrder selects how weekday series are ordered.
type WeekdayOrder int

const (
	// OrderWeekdaysByName sorts alphabetically by weekday name (legacy default).
	OrderWeekdaysByName WeekdayOrder = iota
	// OrderWeekdaysChronologically sorts Sunday through Saturday.
	OrderWeekdaysChronologically
)

// MonthlyTotal is one bucket of a month-grouped expense series.
// Year is zero under GroupByMonthOfYear.
type MonthlyTotal struct {
	Label string
	Month time.Month
	Year  int
	Total decimal.Decimal
}

// MonthlyChange is the period-over-period delta for one month against the
// bucket before it. Percent is invalid when the prior total is zero: the
// change is undefined and callers must check Valid before rendering.
type MonthlyChange struct {
	Label   string
	Amount  decimal.Decimal
	Percent decimal.NullDecimal
}

// CategoryTotal is the expense sum for one category. Buckets are keyed by
// category ID; Name is carried for display only.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Total      decimal.Decimal
}

// MonthlyCashFlow holds both income and expense sums for one month bucket.
type MonthlyCashFlow struct {
	Label   string
	Month   time.Month
	Year    int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DailyTotal is the expense sum for a single calendar day.
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
}

// WeekdayAverage is the mean expense amount across all entries falling on
// one weekday.
type WeekdayAverage struct {
	Name    string
	Weekday time.Weekday
	Average decimal.Decimal
}

// ExpenseItem identifies a single expense entry in a ranking.
type ExpenseItem struct {
	Date   time.Time
	Name   string
	Amount decimal.Decimal
}

// monthKey identifies a month bucket. Year is zero under GroupByMonthOfYear.
type monthKey struct {
	Year  int
	Month time.Month
}

func (k monthKey) before(other monthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k monthKey) label() string {
	if k.Year == 0 {
		return shortMonthName(k.Month)
	}
	return fmt.Sprintf("%s %d", shortMonthName(k.Month), k.Year)
}

func bucketKey(date time.Time, grouping MonthGrouping) monthKey {
	key := monthKey{Month: date.Month()}
	if grouping == GroupByYearMonth {
		key.Year = date.Year()
	}
	return key
}

func shortMonthName(m time.Month) string {
	return m.String()[:3]
}
