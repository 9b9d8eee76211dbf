package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ahaampo5/blog/internal/blog"
)

// filterBar is the category tab row. At most one category is active
// at a time, matching the backend's single category filter.
type filterBar struct {
	categories   []blog.Category
	activeID     string
	filterMode   bool
	filterCursor int
}

func newFilterBar() filterBar {
	return filterBar{}
}

func (f *filterBar) setCategories(cats []blog.Category) {
	f.categories = cats
	if f.filterCursor >= len(cats) {
		f.filterCursor = 0
	}
}

func (f *filterBar) toggle(id string) {
	if f.activeID == id {
		f.activeID = ""
	} else {
		f.activeID = id
	}
}

func (f *filterBar) toggleCurrent() {
	if f.filterCursor < len(f.categories) {
		f.toggle(f.categories[f.filterCursor].ID)
	}
}

func (f *filterBar) activeLabel() string {
	for _, c := range f.categories {
		if c.ID == f.activeID {
			return c.Name
		}
	}
	return "All"
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	// "All" tab
	if f.activeID == "" {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, c := range f.categories {
		style := tabInactiveStyle
		if f.activeID == c.ID {
			style = tabActiveStyle
		}
		label := c.Name
		if f.filterMode && i == f.filterCursor {
			label = "[" + c.Name + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
