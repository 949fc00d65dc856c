package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/outlay-app/outlay/internal/cli"
	"github.com/outlay-app/outlay/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage entry categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories defined."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Icon"),
				cli.HeaderStyle.Render("Color"),
				cli.HeaderStyle.Render("ID"))

			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					c.Name,
					c.Icon,
					formatHexColor(c.Color),
					cli.SubtleStyle.Render(c.ID))
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		colorFlag string
		icon      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			color, err := parseHexColor(colorFlag)
			if err != nil {
				return err
			}

			category := model.NewCategory(args[0], color, icon, time.Now())
			if err := store.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Created ") + category.Name)
			fmt.Println(cli.SubtleStyle.Render("id: " + category.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&colorFlag, "color", "#808080", "category color (#RRGGBB)")
	cmd.Flags().StringVar(&icon, "icon", "tag", "icon name")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		newName   string
		colorFlag string
		icon      string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update a category's name, color, or icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				category.Name = newName
			}
			if cmd.Flags().Changed("color") {
				if category.Color, err = parseHexColor(colorFlag); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("icon") {
				category.Icon = icon
			}

			if err := store.UpdateCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Updated ") + category.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new category name")
	cmd.Flags().StringVar(&colorFlag, "color", "", "category color (#RRGGBB)")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category and its entries",
		Long:  `Delete a category. All entries assigned to it are removed as well, so the --cascade flag is required as confirmation.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return err
			}

			entries, err := store.GetEntriesByCategoryID(ctx, category.ID)
			if err != nil {
				return fmt.Errorf("failed to inspect category entries: %w", err)
			}
			if len(entries) > 0 && !cascade {
				return fmt.Errorf("category %q has %d entries; pass --cascade to delete them too",
					category.Name, len(entries))
			}

			removed, err := store.DeleteCategory(ctx, category.ID)
			if err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Deleted ") + category.Name)
			if removed > 0 {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Removed %d entries with it", removed)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "also delete the category's entries")

	return cmd
}

func formatHexColor(c model.ColorRGB) string {
	return fmt.Sprintf("#%02X%02X%02X",
		int(c.Red*255+0.5), int(c.Green*255+0.5), int(c.Blue*255+0.5))
}
