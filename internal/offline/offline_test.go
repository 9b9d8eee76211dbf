package offline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ahaampo5/blog/internal/blog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePosts() []Post {
	now := time.Now()
	return []Post{
		{ID: "p1", Title: "Generics in practice", Summary: "Using type params", Content: "Body one", Category: "Engineering", Tags: []string{"go", "generics"}, Views: 10, CreatedAt: now.Add(-1 * time.Hour), FetchedAt: now},
		{ID: "p2", Title: "Design tokens", Summary: "Color systems", Content: "Body two", Category: "Design", Views: 3, CreatedAt: now.Add(-2 * time.Hour), FetchedAt: now},
		{ID: "p3", Title: "Profiling services", Summary: "pprof walkthrough", Content: "Body three about search", Category: "Engineering", Views: 7, CreatedAt: now.Add(-48 * time.Hour), FetchedAt: now},
	}
}

func TestUpsertAndGet(t *testing.T) {
	s := testStore(t)

	if err := s.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetPosts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(got))
	}
	// Newest first
	if got[0].ID != "p1" {
		t.Errorf("expected newest first, got %s", got[0].ID)
	}
	if len(got[0].Tags) != 2 || got[0].Tags[0] != "go" {
		t.Errorf("unexpected tags: %v", got[0].Tags)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	s := testStore(t)
	posts := samplePosts()

	if err := s.UpsertPosts(posts); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	posts[0].Title = "Generics, revisited"
	if err := s.UpsertPosts(posts[:1]); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.GetPosts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 posts after upsert, got %d", len(got))
	}
	if got[0].Title != "Generics, revisited" {
		t.Errorf("expected updated title, got %q", got[0].Title)
	}
}

func TestQueryByCategory(t *testing.T) {
	s := testStore(t)
	if err := s.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetPosts(QueryOpts{Category: "Engineering"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 engineering posts, got %d", len(got))
	}
}

func TestQuerySearch(t *testing.T) {
	s := testStore(t)
	if err := s.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetPosts(QueryOpts{Search: "search"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p3" {
		t.Errorf("expected only p3 to match, got %v", got)
	}
}

func TestGetPost(t *testing.T) {
	s := testStore(t)
	if err := s.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p, err := s.GetPost("p2")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if p.Title != "Design tokens" {
		t.Errorf("unexpected post: %+v", p)
	}

	if _, err := s.GetPost("missing"); err == nil {
		t.Error("expected error for missing post")
	}
}

func TestPrune(t *testing.T) {
	s := testStore(t)
	posts := samplePosts()
	posts[2].FetchedAt = time.Now().Add(-30 * 24 * time.Hour)
	if err := s.UpsertPosts(posts); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := s.Prune(7 * 24 * time.Hour); err != nil {
		t.Fatalf("prune: %v", err)
	}

	got, err := s.GetPosts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected stale post pruned, got %d posts", len(got))
	}
}

func TestNeedsSync(t *testing.T) {
	s := testStore(t)

	if !s.NeedsSync(time.Hour) {
		t.Error("fresh store should need sync")
	}
	if err := s.SetLastSync(); err != nil {
		t.Fatalf("set last sync: %v", err)
	}
	if s.NeedsSync(time.Hour) {
		t.Error("store should not need sync right after SetLastSync")
	}
}

func TestFromDetails(t *testing.T) {
	now := time.Now()
	p := blog.PostWithDetails{
		Post:       blog.Post{ID: "p9", Title: "T", Summary: "S", Content: "C", Views: 4, CreatedAt: now},
		Category:   &blog.Category{ID: "c1", Name: "Engineering"},
		TagDetails: []blog.Tag{{ID: "t1", Name: "go"}, {ID: "t2", Name: "web"}},
	}
	row := FromDetails(p, now)
	if row.Category != "Engineering" {
		t.Errorf("unexpected category: %s", row.Category)
	}
	if len(row.Tags) != 2 || row.Tags[1] != "web" {
		t.Errorf("unexpected tags: %v", row.Tags)
	}
}
