package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ahaampo5/blog/internal/api"
	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/format"
	"github.com/ahaampo5/blog/internal/output"
)

var (
	postsPage     int
	postsSize     int
	postsCategory string
	postsTags     []string
	postsSearch   string
	postsAll      bool

	postTitle     string
	postContent   string
	postFile      string
	postSummary   string
	postCategory  string
	postTags      []string
	postImage     string
	postDraft     bool
	postPublished bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and manage blog posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		opts := api.ListOpts{
			Page:     postsPage,
			Size:     postsSize,
			Category: postsCategory,
			Tags:     postsTags,
			Search:   postsSearch,
		}
		if opts.Size == 0 {
			opts.Size = e.cfg.PageSize
		}

		var page blog.Page[blog.PostWithDetails]
		if postsAll {
			if err := e.requireAdmin(); err != nil {
				return err
			}
			page, err = e.svc.Posts(cmd.Context(), opts)
		} else {
			page, err = e.svc.PublicPosts(cmd.Context(), opts)
		}
		if err != nil {
			return fmt.Errorf("listing posts: %w", err)
		}

		if len(page.Items) == 0 {
			output.Dim(cmd.OutOrStdout(), "no posts")
			return nil
		}

		t := output.NewTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "CATEGORY", "STATUS", "VIEWS", "UPDATED"})
		for _, p := range page.Items {
			category := "-"
			if p.Category != nil {
				category = p.Category.Name
			}
			status := "published"
			if !p.IsPublished {
				status = "draft"
			}
			t.AddRow([]string{
				p.ID,
				format.Truncate(p.Title, 48),
				category,
				status,
				strconv.Itoa(p.Views),
				format.Date(p.UpdatedAt),
			})
		}
		t.Render()
		output.Dim(cmd.OutOrStdout(), "page %d/%d (%d posts)", page.Page, page.Pages, page.Total)
		return nil
	},
}

var postsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		var post blog.PostWithDetails
		if postsAll {
			if err := e.requireAdmin(); err != nil {
				return err
			}
			post, err = e.svc.Post(cmd.Context(), args[0])
		} else {
			post, err = e.svc.PublicPost(cmd.Context(), args[0])
		}
		if err != nil {
			return fmt.Errorf("fetching post %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, post.Title)
		if post.Category != nil {
			output.Dim(out, "category: %s", post.Category.Name)
		}
		if len(post.TagDetails) > 0 {
			names := make([]string, len(post.TagDetails))
			for i, tag := range post.TagDetails {
				names[i] = tag.Name
			}
			output.Dim(out, "tags: %v", names)
		}
		output.Dim(out, "%d views, updated %s", post.Views, format.RelativeTime(post.UpdatedAt))
		fmt.Fprintln(out)
		fmt.Fprintln(out, post.Content)
		return nil
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		content, err := postBody(cmd)
		if err != nil {
			return err
		}
		if postTitle == "" {
			return fmt.Errorf("--title is required")
		}

		created, err := e.svc.CreatePost(cmd.Context(), blog.CreatePostRequest{
			Title:         postTitle,
			Content:       content,
			Summary:       postSummary,
			CategoryID:    postCategory,
			Tags:          postTags,
			FeaturedImage: postImage,
			IsPublished:   !postDraft,
		})
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}

		output.Success(cmd.OutOrStdout(), "created post %s (%s)", created.ID, created.Title)
		return nil
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a post",
	Long:  "Update a post. Only the fields whose flags are set are sent to the backend.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		var req blog.UpdatePostRequest
		if cmd.Flags().Changed("title") {
			req.Title = &postTitle
		}
		if cmd.Flags().Changed("content") || cmd.Flags().Changed("file") {
			content, err := postBody(cmd)
			if err != nil {
				return err
			}
			req.Content = &content
		}
		if cmd.Flags().Changed("summary") {
			req.Summary = &postSummary
		}
		if cmd.Flags().Changed("category") {
			req.CategoryID = &postCategory
		}
		if cmd.Flags().Changed("tag") {
			req.Tags = postTags
		}
		if cmd.Flags().Changed("image") {
			req.FeaturedImage = &postImage
		}
		if cmd.Flags().Changed("published") {
			req.IsPublished = &postPublished
		}

		updated, err := e.svc.UpdatePost(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("updating post %s: %w", args[0], err)
		}

		output.Success(cmd.OutOrStdout(), "updated post %s (%s)", updated.ID, updated.Title)
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		if err := e.svc.DeletePost(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting post %s: %w", args[0], err)
		}
		output.Success(cmd.OutOrStdout(), "deleted post %s", args[0])
		return nil
	},
}

var postsPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  setPublished(true),
}

var postsUnpublishCmd = &cobra.Command{
	Use:   "unpublish <id>",
	Short: "Take a post back to draft",
	Args:  cobra.ExactArgs(1),
	RunE:  setPublished(false),
}

func setPublished(published bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		post, err := e.svc.SetPublished(cmd.Context(), args[0], published)
		if err != nil {
			return fmt.Errorf("updating post %s: %w", args[0], err)
		}
		state := "published"
		if !post.IsPublished {
			state = "draft"
		}
		output.Success(cmd.OutOrStdout(), "post %s is now %s", post.ID, state)
		return nil
	}
}

// postBody returns the post content from --content, or from the file
// named by --file when given.
func postBody(cmd *cobra.Command) (string, error) {
	if postFile != "" {
		data, err := os.ReadFile(postFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", postFile, err)
		}
		return string(data), nil
	}
	if postContent == "" && cmd.Name() == "create" {
		return "", fmt.Errorf("either --content or --file is required")
	}
	return postContent, nil
}

func init() {
	postsListCmd.Flags().IntVar(&postsPage, "page", 1, "page number")
	postsListCmd.Flags().IntVar(&postsSize, "size", 0, "page size (defaults to the configured page size)")
	postsListCmd.Flags().StringVar(&postsCategory, "category", "", "filter by category id")
	postsListCmd.Flags().StringSliceVar(&postsTags, "tag", nil, "filter by tag id (repeatable)")
	postsListCmd.Flags().StringVar(&postsSearch, "search", "", "full text search")
	postsListCmd.Flags().BoolVar(&postsAll, "all", false, "include drafts (admin only)")
	postsGetCmd.Flags().BoolVar(&postsAll, "all", false, "fetch through the admin endpoint (admin only)")

	for _, c := range []*cobra.Command{postsCreateCmd, postsUpdateCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "post title")
		c.Flags().StringVar(&postContent, "content", "", "post body in markdown")
		c.Flags().StringVar(&postFile, "file", "", "read the post body from a file")
		c.Flags().StringVar(&postSummary, "summary", "", "short summary")
		c.Flags().StringVar(&postCategory, "category", "", "category id")
		c.Flags().StringSliceVar(&postTags, "tag", nil, "tag id (repeatable)")
		c.Flags().StringVar(&postImage, "image", "", "featured image url")
	}
	postsCreateCmd.Flags().BoolVar(&postDraft, "draft", false, "create as an unpublished draft")
	postsUpdateCmd.Flags().BoolVar(&postPublished, "published", false, "set the published state")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsGetCmd)
	postsCmd.AddCommand(postsCreateCmd)
	postsCmd.AddCommand(postsUpdateCmd)
	postsCmd.AddCommand(postsDeleteCmd)
	postsCmd.AddCommand(postsPublishCmd)
	postsCmd.AddCommand(postsUnpublishCmd)
}
