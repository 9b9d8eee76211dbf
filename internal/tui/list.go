package tui

import (
	"strings"

	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/format"
)

func renderListItem(p blog.PostWithDetails, selected bool, width int, showDrafts bool) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + format.Truncate(p.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + format.Truncate(p.Title, width-4))
	}

	category := "Uncategorized"
	if p.Category != nil {
		category = p.Category.Name
	}
	meta := "  " + itemCategoryStyle.Render(category) + " " + itemTimeStyle.Render("· "+format.RelativeTime(p.CreatedAt))
	if showDrafts && !p.IsPublished {
		meta += " " + itemDraftStyle.Render("[draft]")
	}

	return title + "\n" + meta
}

func renderList(posts []blog.PostWithDetails, cursor int, height int, width int, showDrafts bool) string {
	if len(posts) == 0 {
		return centerText("No posts found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(posts) {
		end = len(posts)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(posts[i], i == cursor, width, showDrafts))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func centerText(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
