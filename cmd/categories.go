package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/format"
	"github.com/ahaampo5/blog/internal/output"
)

var categoryDescription string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse and manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		categories, err := e.svc.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing categories: %w", err)
		}
		if len(categories) == 0 {
			output.Dim(cmd.OutOrStdout(), "no categories")
			return nil
		}

		t := output.NewTable(cmd.OutOrStdout(), []string{"ID", "NAME", "DESCRIPTION", "CREATED"})
		for _, c := range categories {
			t.AddRow([]string{c.ID, c.Name, format.Truncate(c.Description, 60), format.Date(c.CreatedAt)})
		}
		t.Render()
		return nil
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		created, err := e.svc.CreateCategory(cmd.Context(), blog.CreateCategoryRequest{
			Name:        args[0],
			Description: categoryDescription,
		})
		if err != nil {
			return fmt.Errorf("creating category: %w", err)
		}
		output.Success(cmd.OutOrStdout(), "created category %s (%s)", created.ID, created.Name)
		return nil
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		req := blog.UpdateCategoryRequest{Name: &args[1]}
		if cmd.Flags().Changed("description") {
			req.Description = &categoryDescription
		}
		updated, err := e.svc.UpdateCategory(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("updating category %s: %w", args[0], err)
		}
		output.Success(cmd.OutOrStdout(), "updated category %s (%s)", updated.ID, updated.Name)
		return nil
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		if err := e.svc.DeleteCategory(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting category %s: %w", args[0], err)
		}
		output.Success(cmd.OutOrStdout(), "deleted category %s", args[0])
		return nil
	},
}

func init() {
	categoriesCreateCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")
	categoriesUpdateCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")

	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)
}
