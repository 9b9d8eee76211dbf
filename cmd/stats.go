package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ahaampo5/blog/internal/api"
	"github.com/ahaampo5/blog/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content totals",
	Long:  "Summarize post, category and tag counts. An admin session also sees the draft count.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		published, err := e.svc.PublicPosts(ctx, api.ListOpts{Page: 1, Size: 1})
		if err != nil {
			return fmt.Errorf("counting posts: %w", err)
		}
		categories, err := e.svc.Categories(ctx)
		if err != nil {
			return fmt.Errorf("counting categories: %w", err)
		}
		tags, err := e.svc.Tags(ctx)
		if err != nil {
			return fmt.Errorf("counting tags: %w", err)
		}

		posts := published.Total
		drafts := -1
		if e.requireAdmin() == nil {
			all, err := e.svc.Posts(ctx, api.ListOpts{Page: 1, Size: 1})
			if err != nil {
				return fmt.Errorf("counting drafts: %w", err)
			}
			posts = all.Total
			drafts = all.Total - published.Total
		}

		t := output.NewTable(cmd.OutOrStdout(), []string{"METRIC", "COUNT"})
		for _, row := range statsRows(posts, drafts, len(categories), len(tags)) {
			t.AddRow(row)
		}
		t.Render()
		return nil
	},
}

// statsRows lays out the totals; drafts < 0 means the session could
// not see unpublished posts and the row is omitted.
func statsRows(posts, drafts, categories, tags int) [][]string {
	rows := [][]string{
		{"posts", strconv.Itoa(posts)},
	}
	if drafts >= 0 {
		rows = append(rows, []string{"drafts", strconv.Itoa(drafts)})
	}
	rows = append(rows,
		[]string{"categories", strconv.Itoa(categories)},
		[]string{"tags", strconv.Itoa(tags)},
	)
	return rows
}
