package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
	}

	cmd.AddCommand(
		listCategoriesCmd(a),
		addCategoryCmd(a),
		updateCategoryCmd(a),
		deleteCategoryCmd(a),
	)
	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			categories := l.Categories()
			if len(categories) == 0 {
				say(cmd, cli.InfoStyle.Render("No categories. Use 'cashflow categories add' to create one."))
				return nil
			}

			t := newTable(cmd.OutOrStdout(), "ID", "Name", "Type", "Color")
			for _, c := range categories {
				t.row(c.ID, c.Name, cli.TypeStyle(c.Type).Render(a.format.TypeLabel(c.Type)), cli.Swatch(c.Color))
			}
			return t.flush()
		},
	}
}

func addCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			typeName, _ := cmd.Flags().GetString("type")
			typ, err := model.ParseTransactionType(typeName)
			if err != nil {
				return err
			}
			color, _ := cmd.Flags().GetString("color")

			c, err := l.AddCategory(cmd.Context(), model.CategoryInput{Name: args[0], Type: typ, Color: color})
			if err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess(fmt.Sprintf("Created category %q (ID: %s)", c.Name, c.ID)))
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "", "income or expense")
	cmd.Flags().String("color", "#6b7280", "display color")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func updateCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if !hasCategory(l.Categories(), id) {
				return common.NewUserError(fmt.Sprintf("category %q does not exist", id), common.ErrNotFound)
			}

			var patch model.CategoryPatch
			patch.Name, _ = stringFlag(cmd, "name")
			patch.Color, _ = stringFlag(cmd, "color")
			if s, ok := stringFlag(cmd, "type"); ok {
				typ, err := model.ParseTransactionType(*s)
				if err != nil {
					return err
				}
				patch.Type = &typ
			}

			if err := l.UpdateCategory(cmd.Context(), id, patch); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Updated category "+id))
			return nil
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("type", "", "new type")
	cmd.Flags().String("color", "", "new color")
	return cmd
}

func deleteCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Transactions in the category are kept and shown as "` + model.UnknownCategoryLabel + `".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if !hasCategory(l.Categories(), id) {
				return common.NewUserError(fmt.Sprintf("category %q does not exist", id), common.ErrNotFound)
			}
			if err := l.DeleteCategory(cmd.Context(), id); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Deleted category "+id))
			return nil
		},
	}
}

func hasCategory(categories []model.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
