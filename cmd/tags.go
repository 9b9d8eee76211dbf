package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/format"
	"github.com/ahaampo5/blog/internal/output"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Browse and manage tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		tags, err := e.svc.Tags(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing tags: %w", err)
		}
		if len(tags) == 0 {
			output.Dim(cmd.OutOrStdout(), "no tags")
			return nil
		}

		t := output.NewTable(cmd.OutOrStdout(), []string{"ID", "NAME", "CREATED"})
		for _, tag := range tags {
			t.AddRow([]string{tag.ID, tag.Name, format.Date(tag.CreatedAt)})
		}
		t.Render()
		return nil
	},
}

var tagsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		created, err := e.svc.CreateTag(cmd.Context(), blog.CreateTagRequest{Name: args[0]})
		if err != nil {
			return fmt.Errorf("creating tag: %w", err)
		}
		output.Success(cmd.OutOrStdout(), "created tag %s (%s)", created.ID, created.Name)
		return nil
	},
}

var tagsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		updated, err := e.svc.UpdateTag(cmd.Context(), args[0], blog.CreateTagRequest{Name: args[1]})
		if err != nil {
			return fmt.Errorf("renaming tag %s: %w", args[0], err)
		}
		output.Success(cmd.OutOrStdout(), "renamed tag %s to %s", updated.ID, updated.Name)
		return nil
	},
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		if err := e.svc.DeleteTag(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting tag %s: %w", args[0], err)
		}
		output.Success(cmd.OutOrStdout(), "deleted tag %s", args[0])
		return nil
	},
}

func init() {
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsCreateCmd)
	tagsCmd.AddCommand(tagsRenameCmd)
	tagsCmd.AddCommand(tagsDeleteCmd)
}
