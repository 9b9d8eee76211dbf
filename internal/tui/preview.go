package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/format"
)

func renderPreview(post *blog.PostWithDetails, width, height, scroll int) string {
	if post == nil {
		return centerText("Select a post", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(post.Title)

	category := "Uncategorized"
	if post.Category != nil {
		category = post.Category.Name
	}
	meta := previewMetaStyle.Render(
		fmt.Sprintf("%s · %s · %d views", category, format.Date(post.CreatedAt), post.Views),
	)

	body := post.Content
	if body == "" {
		body = post.Summary
	}
	if body == "" {
		body = "(No content available)"
	}
	body = format.Excerpt(body, 2000)

	bodyBlock := previewBodyStyle.Width(contentWidth).Render(wrapText(body, contentWidth))

	parts := []string{title, meta, "", bodyBlock}
	if len(post.TagDetails) > 0 {
		names := make([]string, len(post.TagDetails))
		for i, tag := range post.TagDetails {
			names[i] = "#" + tag.Name
		}
		parts = append(parts, "", previewTagStyle.Width(contentWidth).Render(strings.Join(names, " ")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
