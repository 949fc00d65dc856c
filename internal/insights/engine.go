// Package insights derives read-only summary views from snapshots of
// entries. Every function is pure: no I/O, no mutation of inputs, and no
// clock reads. Where the current instant matters it is an explicit
// parameter. Empty inputs always yield zero or empty results, never errors.
package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/model"
)

// DefaultTopExpensesLimit caps TopExpenses when no limit is given.
const DefaultTopExpensesLimit = 5

// DailySpendingWindowDays is the length of the trailing daily series.
const DailySpendingWindowDays = 30

var oneHundred = decimal.NewFromInt(100)

// NetTotal sums entries, subtracting expenses and adding income.
func NetTotal(entries []model.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Type == model.EntryTypeExpense {
			total = total.Sub(e.Amount)
		} else {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalSpentInMonth sums expense entries whose local calendar date falls in
// the given year and month.
func TotalSpentInMonth(entries []model.Entry, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Type != model.EntryTypeExpense {
			continue
		}
		if e.Date.Year() == year && e.Date.Month() == month {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalSpentThisMonth sums expenses for the calendar month containing now.
func TotalSpentThisMonth(entries []model.Entry, now time.Time) decimal.Decimal {
	return TotalSpentInMonth(entries, now.Year(), now.Month())
}

// TotalSpentLastMonth sums expenses for the calendar month before the one
// containing now.
func TotalSpentLastMonth(entries []model.Entry, now time.Time) decimal.Decimal {
	year, month := now.Year(), now.Month()
	if month == time.January {
		year--
		month = time.December
	} else {
		month--
	}
	return TotalSpentInMonth(entries, year, month)
}

// ExpensesByMonth groups expense entries into month buckets and sums each,
// ordered ascending by bucket. categoryID narrows the series to a single
// category; pass the empty string for all categories. Under the default
// GroupByMonthOfYear grouping, entries from different years sharing a month
// number merge into one bucket.
func ExpensesByMonth(entries []model.Entry, categoryID string, grouping MonthGrouping) []MonthlyTotal {
	buckets := make(map[monthKey]decimal.Decimal)
	for _, e := range entries {
		if e.Type != model.EntryTypeExpense {
			continue
		}
		if categoryID != "" && e.CategoryID != categoryID {
			continue
		}
		key := bucketKey(e.Date, grouping)
		buckets[key] = buckets[key].Add(e.Amount)
	}

	keys := make([]monthKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	series := make([]MonthlyTotal, 0, len(keys))
	for _, key := range keys {
		series = append(series, MonthlyTotal{
			Label: key.label(),
			Month: key.Month,
			Year:  key.Year,
			Total: buckets[key],
		})
	}
	return series
}

// ExpenseChangeByMonth computes month-over-month deltas for a series in its
// emitted order. Each element after the first yields current minus previous
// and the percent change against the previous total. When the previous
// total is zero the percent is left invalid. Fewer than two buckets yield
// an empty result.
func ExpenseChangeByMonth(series []MonthlyTotal) []MonthlyChange {
	if len(series) < 2 {
		return nil
	}

	changes := make([]MonthlyChange, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		current, previous := series[i], series[i-1]
		change := MonthlyChange{
			Label:  current.Label,
			Amount: current.Total.Sub(previous.Total),
		}
		if !previous.Total.IsZero() {
			change.Percent = decimal.NullDecimal{
				Decimal: change.Amount.Div(previous.Total).Mul(oneHundred),
				Valid:   true,
			}
		}
		changes = append(changes, change)
	}
	return changes
}

// ExpensesByCategory sums expense entries per category, ordered ascending
// alphabetically by category name with ID as tiebreak. Buckets are keyed by
// category ID, so two categories sharing a name stay distinct. Entries
// without a category, or referencing one absent from categories, are
// skipped.
func ExpensesByCategory(entries []model.Entry, categories []model.Category) []CategoryTotal {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	buckets := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Type != model.EntryTypeExpense || e.CategoryID == "" {
			continue
		}
		if _, ok := names[e.CategoryID]; !ok {
			continue
		}
		buckets[e.CategoryID] = buckets[e.CategoryID].Add(e.Amount)
	}

	totals := make([]CategoryTotal, 0, len(buckets))
	for id, total := range buckets {
		totals = append(totals, CategoryTotal{
			CategoryID: id,
			Name:       names[id],
			Total:      total,
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Name != totals[j].Name {
			return totals[i].Name < totals[j].Name
		}
		return totals[i].CategoryID < totals[j].CategoryID
	})
	return totals
}

// IncomeVsExpensesByMonth groups all entries into month buckets and sums
// income and expenses per bucket, ordered ascending. The bucket set is the
// union of months with either kind of activity; inactive months are
// omitted, not zero-filled.
func IncomeVsExpensesByMonth(entries []model.Entry, grouping MonthGrouping) []MonthlyCashFlow {
	income := make(map[monthKey]decimal.Decimal)
	expense := make(map[monthKey]decimal.Decimal)
	for _, e := range entries {
		key := bucketKey(e.Date, grouping)
		if e.Type == model.EntryTypeExpense {
			expense[key] = expense[key].Add(e.Amount)
		} else {
			income[key] = income[key].Add(e.Amount)
		}
	}

	seen := make(map[monthKey]bool, len(income)+len(expense))
	keys := make([]monthKey, 0, len(income)+len(expense))
	for key := range income {
		seen[key] = true
		keys = append(keys, key)
	}
	for key := range expense {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	series := make([]MonthlyCashFlow, 0, len(keys))
	for _, key := range keys {
		series = append(series, MonthlyCashFlow{
			Label:   key.label(),
			Month:   key.Month,
			Year:    key.Year,
			Income:  income[key],
			Expense: expense[key],
		})
	}
	return series
}

// DailySpending sums expenses per calendar day across the 30 consecutive
// days ending at now's day, inclusive. Every day in the window appears in
// the output even with no activity, ordered ascending by date. Income
// entries in the window are ignored.
func DailySpending(entries []model.Entry, now time.Time) []DailyTotal {
	loc := now.Location()
	end := startOfDay(now, loc)
	start := end.AddDate(0, 0, -(DailySpendingWindowDays - 1))

	totals := make(map[time.Time]decimal.Decimal, DailySpendingWindowDays)
	for _, e := range entries {
		if e.Type != model.EntryTypeExpense {
			continue
		}
		day := startOfDay(e.Date.In(loc), loc)
		if day.Before(start) || day.After(end) {
			continue
		}
		totals[day] = totals[day].Add(e.Amount)
	}

	series := make([]DailyTotal, 0, DailySpendingWindowDays)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, DailyTotal{Day: day, Total: totals[day]})
	}
	return series
}

// AverageExpenseByWeekday computes the arithmetic mean expense amount per
// weekday across all expense entries. Weekdays with no expenses are
// omitted. The default order is alphabetical by weekday name, matching the
// legacy contract; pass OrderWeekdaysChronologically for Sunday-first.
func AverageExpenseByWeekday(entries []model.Entry, order WeekdayOrder) []WeekdayAverage {
	type bucket struct {
		total decimal.Decimal
		count int64
	}
	buckets := make(map[time.Weekday]bucket)
	for _, e := range entries {
		if e.Type != model.EntryTypeExpense {
			continue
		}
		wd := e.Date.Weekday()
		b := buckets[wd]
		b.total = b.total.Add(e.Amount)
		b.count++
		buckets[wd] = b
	}

	averages := make([]WeekdayAverage, 0, len(buckets))
	for wd, b := range buckets {
		averages = append(averages, WeekdayAverage{
			Weekday: wd,
			Name:    wd.String(),
			Average: b.total.Div(decimal.NewFromInt(b.count)),
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		if order == OrderWeekdaysChronologically {
			return averages[i].Weekday < averages[j].Weekday
		}
		return averages[i].Name < averages[j].Name
	})
	return averages
}

// TopExpenses returns the highest-amount expense entries, sorted descending
// by amount and truncated to limit. limit <= 0 uses
// DefaultTopExpensesLimit. Ties keep their input order; the sort is stable
// so results are reproducible.
func TopExpenses(entries []model.Entry, limit int) []ExpenseItem {
	if limit <= 0 {
		limit = DefaultTopExpensesLimit
	}

	items := make([]ExpenseItem, 0, len(entries))
	for _, e := range entries {
		if e.Type != model.EntryTypeExpense {
			continue
		}
		items = append(items, ExpenseItem{Name: e.Name, Date: e.Date, Amount: e.Amount})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.GreaterThan(items[j].Amount)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
