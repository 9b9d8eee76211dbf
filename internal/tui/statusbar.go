package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	total      int
	page       int
	pages      int
	filter     string
	username   string
	offline    bool
	searching  bool
	refreshing bool
}

func renderStatusBar(info statusInfo, width int) string {
	userAccent := lipgloss.NewStyle().
		Foreground(colorGreen).
		Bold(true)

	left := fmt.Sprintf(" %d posts", info.total)
	if info.pages > 1 {
		left += fmt.Sprintf(" · page %d/%d", info.page, info.pages)
	}
	if info.filter != "All" && info.filter != "" {
		left += " · " + info.filter
	}
	if info.username != "" {
		left += " · " + userAccent.Render(info.username)
	}
	if info.offline {
		left += " · offline"
	}
	if info.refreshing {
		left += " (loading...)"
	}

	right := " a admin  / search  f filter  q quit "
	if info.searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
