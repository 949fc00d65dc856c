package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/outlay-app/outlay/internal/cli"
	"github.com/outlay-app/outlay/internal/config"
	"github.com/outlay-app/outlay/internal/insights"
	"github.com/outlay-app/outlay/internal/model"
)

func insightsCmd() *cobra.Command {
	var (
		categoryName string
		byYearMonth  bool
		chronoDays   bool
		topLimit     int
	)

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show spending insights",
		Long:  `Aggregate all entries into spending summaries: monthly totals and trends, category breakdowns, cash flow, recent daily spending, weekday averages, and largest expenses.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to load entries: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No entries yet. Use 'outlay add' to record one."))
				return nil
			}

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			grouping := insights.GroupByMonthOfYear
			if byYearMonth {
				grouping = insights.GroupByYearMonth
			}
			weekdayOrder := insights.OrderWeekdaysByName
			if chronoDays {
				weekdayOrder = insights.OrderWeekdaysChronologically
			}

			categoryFilter := ""
			if categoryName != "" {
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				categoryFilter = cat.ID
			}

			now := time.Now()
			currency := config.Currency()

			renderSummary(entries, now, currency)
			renderMonthlyExpenses(entries, categoryFilter, grouping, currency)
			renderCategoryBreakdown(entries, categories, currency)
			renderCashFlow(entries, grouping, currency)
			renderDailySpending(entries, now, currency)
			renderWeekdayAverages(entries, weekdayOrder, currency)
			renderTopExpenses(entries, topLimit, currency)

			return nil
		},
	}

	cmd.Flags().StringVar(&categoryName, "category", "", "restrict the monthly breakdown to one category")
	cmd.Flags().BoolVar(&byYearMonth, "by-year-month", false, "keep the same month of different years separate")
	cmd.Flags().BoolVar(&chronoDays, "chronological-days", false, "order weekday averages Sunday through Saturday")
	cmd.Flags().IntVar(&topLimit, "top", insights.DefaultTopExpensesLimit, "how many of the largest expenses to show")

	return cmd
}

func renderSummary(entries []model.Entry, now time.Time, currency string) {
	thisMonth := insights.TotalSpentThisMonth(entries, now)
	lastMonth := insights.TotalSpentLastMonth(entries, now)
	net := insights.NetTotal(entries)

	var change decimal.NullDecimal
	if !lastMonth.IsZero() {
		change = decimal.NullDecimal{
			Decimal: thisMonth.Sub(lastMonth).Div(lastMonth).Mul(decimal.NewFromInt(100)),
			Valid:   true,
		}
	}

	fmt.Println(cli.TitleStyle.Render("Summary"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Spent this month\t%s\t%s\n",
		cli.ExpenseStyle.Render(cli.FormatAmount(thisMonth, currency)),
		cli.FormatPercent(change))
	fmt.Fprintf(w, "Spent last month\t%s\t\n", cli.ExpenseStyle.Render(cli.FormatAmount(lastMonth, currency)))
	fmt.Fprintf(w, "Net balance\t%s\t\n", cli.FormatAmount(net, currency))
	_ = w.Flush()
	fmt.Println()
}

func renderMonthlyExpenses(entries []model.Entry, categoryID string, grouping insights.MonthGrouping, currency string) {
	series := insights.ExpensesByMonth(entries, categoryID, grouping)
	if len(series) == 0 {
		return
	}
	changes := insights.ExpenseChangeByMonth(series)

	fmt.Println(cli.TitleStyle.Render("Expenses by month"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Month"),
		cli.HeaderStyle.Render("Total"),
		cli.HeaderStyle.Render("Change"))

	for i, mt := range series {
		change := cli.SubtleStyle.Render("n/a")
		if i > 0 {
			change = cli.FormatPercent(changes[i-1].Percent)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", mt.Label, cli.FormatAmount(mt.Total, currency), change)
	}
	_ = w.Flush()
	fmt.Println()
}

func renderCategoryBreakdown(entries []model.Entry, categories []model.Category, currency string) {
	totals := insights.ExpensesByCategory(entries, categories)
	if len(totals) == 0 {
		return
	}

	fmt.Println(cli.TitleStyle.Render("Expenses by category"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n",
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Total"))

	for _, ct := range totals {
		name := ct.Name
		if name == "" {
			name = cli.SubtleStyle.Render("(uncategorized)")
		}
		fmt.Fprintf(w, "%s\t%s\n", name, cli.FormatAmount(ct.Total, currency))
	}
	_ = w.Flush()
	fmt.Println()
}

func renderCashFlow(entries []model.Entry, grouping insights.MonthGrouping, currency string) {
	flows := insights.IncomeVsExpensesByMonth(entries, grouping)
	if len(flows) == 0 {
		return
	}

	fmt.Println(cli.TitleStyle.Render("Income vs expenses"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Month"),
		cli.HeaderStyle.Render("Income"),
		cli.HeaderStyle.Render("Expenses"),
		cli.HeaderStyle.Render("Net"))

	for _, f := range flows {
		net := f.Income.Sub(f.Expense)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.Label,
			cli.IncomeStyle.Render(cli.FormatAmount(f.Income, currency)),
			cli.ExpenseStyle.Render(cli.FormatAmount(f.Expense, currency)),
			cli.FormatAmount(net, currency))
	}
	_ = w.Flush()
	fmt.Println()
}

func renderDailySpending(entries []model.Entry, now time.Time, currency string) {
	days := insights.DailySpending(entries, now)

	fmt.Println(cli.TitleStyle.Render("Last 30 days"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n",
		cli.HeaderStyle.Render("Day"),
		cli.HeaderStyle.Render("Spent"))

	for _, d := range days {
		if d.Total.IsZero() {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", d.Day.Format("Mon 2 Jan"), cli.FormatAmount(d.Total, currency))
	}
	_ = w.Flush()
	fmt.Println()
}

func renderWeekdayAverages(entries []model.Entry, order insights.WeekdayOrder, currency string) {
	averages := insights.AverageExpenseByWeekday(entries, order)
	if len(averages) == 0 {
		return
	}

	fmt.Println(cli.TitleStyle.Render("Average expense by weekday"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n",
		cli.HeaderStyle.Render("Weekday"),
		cli.HeaderStyle.Render("Average"))

	for _, a := range averages {
		fmt.Fprintf(w, "%s\t%s\n", a.Name, cli.FormatAmount(a.Average, currency))
	}
	_ = w.Flush()
	fmt.Println()
}

func renderTopExpenses(entries []model.Entry, limit int, currency string) {
	top := insights.TopExpenses(entries, limit)
	if len(top) == 0 {
		return
	}

	fmt.Println(cli.TitleStyle.Render("Largest expenses"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Name"),
		cli.HeaderStyle.Render("Amount"))

	for _, e := range top {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.Date.Format("2 Jan 2006"),
			e.Name,
			cli.ExpenseStyle.Render(cli.FormatAmount(e.Amount, currency)))
	}
	_ = w.Flush()
	fmt.Println()
}
