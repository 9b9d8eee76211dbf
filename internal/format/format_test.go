package format

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this one is too long", 10, "this on..."},
		{"ab", 2, "ab"},
		{"abcd", 3, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	content := "# Heading\n\nSome **bold** and *italic* text with `code`,\na [link](https://example.com) and an ![image](https://example.com/a.png)."
	got := Excerpt(content, 200)
	want := "Heading Some bold and italic text with code, a link and an ."
	if got != want {
		t.Errorf("Excerpt = %q, want %q", got, want)
	}
}

func TestExcerptTruncates(t *testing.T) {
	got := Excerpt("plain text that keeps going and going", 15)
	if got != "plain text t..." {
		t.Errorf("Excerpt = %q", got)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.24 is out!", "go-1-24-is-out"},
		{"--already--dashed--", "already-dashed"},
		{"CamelCase Title", "camelcase-title"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.JPG", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{".hidden", ""},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		if got := FileExtension(tt.in); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("cover.webp") {
		t.Error("expected cover.webp to be an image")
	}
	if IsImageFile("movie.mp4") {
		t.Error("did not expect movie.mp4 to be an image")
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := FileSize(tt.in); got != tt.want {
			t.Errorf("FileSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	if got := RelativeTime(now.Add(-30 * time.Second)); got != "just now" {
		t.Errorf("RelativeTime = %q", got)
	}
	if got := RelativeTime(now.Add(-3 * time.Hour)); got != "3h" {
		t.Errorf("RelativeTime = %q", got)
	}
	if got := RelativeTime(now.Add(-49 * time.Hour)); got != "2d" {
		t.Errorf("RelativeTime = %q", got)
	}
}

func TestValidUsername(t *testing.T) {
	if !ValidUsername("admin") {
		t.Error("expected admin to be valid")
	}
	if ValidUsername("") || ValidUsername("has space") {
		t.Error("expected empty and spaced names to be invalid")
	}
}
