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
	"github.com/outlay-app/outlay/internal/model"
	"github.com/outlay-app/outlay/internal/service"
)

func addEntryCmd() *cobra.Command {
	var (
		entryName    string
		amountFlag   string
		typeFlag     string
		categoryName string
		dateFlag     string
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new income or expense entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			amount, err := decimal.NewFromString(amountFlag)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountFlag, err)
			}
			if amount.IsNegative() {
				return fmt.Errorf("amount cannot be negative; use --type expense instead")
			}

			entryType := model.EntryType(typeFlag)
			if !entryType.Valid() {
				return fmt.Errorf("invalid type %q (want expense or income)", typeFlag)
			}

			date := time.Now()
			if dateFlag != "" {
				if date, err = parseEntryDate(dateFlag); err != nil {
					return err
				}
			}

			entry := model.NewEntry(date)
			entry.Name = entryName
			entry.Type = entryType
			entry.Amount = amount
			entry.Notes = notes

			if categoryName != "" {
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				entry.CategoryID = cat.ID
			}

			if err := store.CreateEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to save entry: %w", err)
			}

			fmt.Printf("%s %s %s\n",
				cli.SuccessStyle.Render("Recorded"),
				entry.Name,
				cli.FormatSignedAmount(entry.Amount, entry.Type, config.Currency()))
			fmt.Println(cli.SubtleStyle.Render("id: " + entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&entryName, "name", "", "entry label")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&typeFlag, "type", "expense", "entry type (expense, income)")
	cmd.Flags().StringVar(&categoryName, "category", "", "category name")
	cmd.Flags().StringVar(&dateFlag, "date", "", "entry date (default: now)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listEntriesCmd() *cobra.Command {
	var (
		monthFlag    string
		categoryName string
		typeFlag     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Long:  `Display entries in date order, optionally filtered by month, category, or type.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			filter := service.EntryFilter{}
			if monthFlag != "" {
				year, month, err := parseMonth(monthFlag)
				if err != nil {
					return err
				}
				start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
				end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
				filter.StartDate = &start
				filter.EndDate = &end
			}
			if categoryName != "" {
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				filter.CategoryID = cat.ID
			}
			if typeFlag != "" {
				filter.Type = model.EntryType(typeFlag)
			}

			entries, err := store.GetEntriesFiltered(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No entries found. Use 'outlay add' to record one."))
				return nil
			}

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			names := make(map[string]string, len(categories))
			for _, c := range categories {
				names[c.ID] = c.Name
			}

			currency := config.Currency()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("ID"))

			for _, e := range entries {
				category := names[e.CategoryID]
				if category == "" {
					category = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cli.FormatDate(e.Date),
					e.Name,
					category,
					cli.FormatSignedAmount(e.Amount, e.Type, currency),
					cli.SubtleStyle.Render(e.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "filter to a calendar month (YYYY-MM)")
	cmd.Flags().StringVar(&categoryName, "category", "", "filter to a category name")
	cmd.Flags().StringVar(&typeFlag, "type", "", "filter to a type (expense, income)")

	return cmd
}

func editEntryCmd() *cobra.Command {
	var (
		entryName    string
		amountFlag   string
		typeFlag     string
		categoryName string
		clearCat     bool
		dateFlag     string
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entry, err := store.GetEntryByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				entry.Name = entryName
			}
			if cmd.Flags().Changed("amount") {
				amount, err := decimal.NewFromString(amountFlag)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amountFlag, err)
				}
				entry.Amount = amount
			}
			if cmd.Flags().Changed("type") {
				entry.Type = model.EntryType(typeFlag)
			}
			if cmd.Flags().Changed("date") {
				if entry.Date, err = parseEntryDate(dateFlag); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("notes") {
				entry.Notes = notes
			}
			switch {
			case clearCat:
				entry.CategoryID = ""
			case cmd.Flags().Changed("category"):
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				entry.CategoryID = cat.ID
			}

			if err := store.UpdateEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to update entry: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Updated ") + entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&entryName, "name", "", "entry label")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, e.g. 12.50")
	cmd.Flags().StringVar(&typeFlag, "type", "", "entry type (expense, income)")
	cmd.Flags().StringVar(&categoryName, "category", "", "category name")
	cmd.Flags().BoolVar(&clearCat, "clear-category", false, "remove the entry's category")
	cmd.Flags().StringVar(&dateFlag, "date", "", "entry date")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")

	return cmd
}

func deleteEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteEntry(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Deleted ") + args[0])
			return nil
		},
	}
}
