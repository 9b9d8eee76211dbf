// Package format holds small text and file helpers shared by the CLI
// and TUI layers.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

var (
	mdHeader  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBold    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic  = regexp.MustCompile(`\*(.*?)\*`)
	mdCode    = regexp.MustCompile("`(.*?)`")
	mdImage   = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	slugStrip = regexp.MustCompile(`[^a-z0-9]+`)
	slugDash  = regexp.MustCompile(`-+`)
)

// Excerpt strips markdown syntax from content and truncates the plain
// text to maxLen runes. Images are removed before links so their alt
// text does not survive as a bare label.
func Excerpt(content string, maxLen int) string {
	plain := mdHeader.ReplaceAllString(content, "")
	plain = mdBold.ReplaceAllString(plain, "$1")
	plain = mdItalic.ReplaceAllString(plain, "$1")
	plain = mdCode.ReplaceAllString(plain, "$1")
	plain = mdImage.ReplaceAllString(plain, "")
	plain = mdLink.ReplaceAllString(plain, "$1")
	plain = strings.Join(strings.Fields(plain), " ")
	return Truncate(plain, maxLen)
}

// Slug lowercases the title and collapses anything that is not a
// letter or digit into single dashes.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "-")
	s = slugDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FileExtension returns the lowercased extension without the dot, or
// "" when the name has no usable extension.
func FileExtension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "svg": true,
}

func IsImageFile(name string) bool {
	return imageExtensions[FileExtension(name)]
}

// FileSize renders a byte count the way file managers do.
func FileSize(bytes int64) string {
	const k = 1024
	if bytes < k {
		return fmt.Sprintf("%d B", bytes)
	}
	units := []string{"KB", "MB", "GB", "TB"}
	v := float64(bytes)
	for _, u := range units {
		v /= k
		if v < k || u == units[len(units)-1] {
			return fmt.Sprintf("%.1f %s", v, u)
		}
	}
	return fmt.Sprintf("%d B", bytes)
}

// RelativeTime renders t relative to now for list views.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// Date renders an absolute timestamp for detail views.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func DateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

// ValidUsername reports whether s is non-empty and printable.
func ValidUsername(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
