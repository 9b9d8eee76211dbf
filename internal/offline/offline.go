// Package offline keeps a local sqlite snapshot of published posts
// so browsing keeps working when the backend is unreachable. It is a
// write-through copy of successful public fetches, never
// authoritative.
package offline

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ahaampo5/blog/internal/blog"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			summary    TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL DEFAULT '',
			category   TEXT NOT NULL DEFAULT '',
			tags       TEXT NOT NULL DEFAULT '',
			views      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			fetched_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(category);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Post is the snapshot row shape; taxonomy references are
// denormalized to names since the snapshot is read-only.
type Post struct {
	ID        string
	Title     string
	Summary   string
	Content   string
	Category  string
	Tags      []string
	Views     int
	CreatedAt time.Time
	FetchedAt time.Time
}

// FromDetails flattens a backend post into a snapshot row.
func FromDetails(p blog.PostWithDetails, fetchedAt time.Time) Post {
	row := Post{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		Views:     p.Views,
		CreatedAt: p.CreatedAt,
		FetchedAt: fetchedAt,
	}
	if p.Category != nil {
		row.Category = p.Category.Name
	}
	for _, tag := range p.TagDetails {
		row.Tags = append(row.Tags, tag.Name)
	}
	return row
}

func (s *Store) UpsertPosts(posts []Post) error {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO posts (id, title, summary, content, category, tags, views, created_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			content = excluded.content,
			category = excluded.category,
			tags = excluded.tags,
			views = excluded.views,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		_, err := stmt.Exec(p.ID, p.Title, p.Summary, p.Content, p.Category,
			strings.Join(p.Tags, ","), p.Views, p.CreatedAt, p.FetchedAt)
		if err != nil {
			return fmt.Errorf("upserting post %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// QueryOpts narrows a snapshot listing.
type QueryOpts struct {
	Category string
	Search   string
	Limit    int
}

func (s *Store) GetPosts(opts QueryOpts) ([]Post, error) {
	var (
		where []string
		args  []interface{}
	)

	if opts.Category != "" {
		where = append(where, "category = ?")
		args = append(args, opts.Category)
	}

	if opts.Search != "" {
		where = append(where, "(title LIKE ? OR summary LIKE ? OR content LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term, term)
	}

	query := "SELECT id, title, summary, content, category, tags, views, created_at, fetched_at FROM posts"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 200
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		var tags string
		if err := rows.Scan(&p.ID, &p.Title, &p.Summary, &p.Content, &p.Category, &tags, &p.Views, &p.CreatedAt, &p.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		if tags != "" {
			p.Tags = strings.Split(tags, ",")
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Store) GetPost(id string) (Post, error) {
	var p Post
	var tags string
	err := s.readDB.QueryRow(
		"SELECT id, title, summary, content, category, tags, views, created_at, fetched_at FROM posts WHERE id = ?", id,
	).Scan(&p.ID, &p.Title, &p.Summary, &p.Content, &p.Category, &tags, &p.Views, &p.CreatedAt, &p.FetchedAt)
	if err != nil {
		return Post{}, err
	}
	if tags != "" {
		p.Tags = strings.Split(tags, ",")
	}
	return p, nil
}

// Prune removes posts not refreshed within the retention window.
func (s *Store) Prune(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)
	_, err := s.writeDB.Exec("DELETE FROM posts WHERE fetched_at < ?", cutoff)
	return err
}

func (s *Store) NeedsSync(interval time.Duration) bool {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_sync'").Scan(&value)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true
	}
	return time.Since(t) > interval
}

func (s *Store) SetLastSync() error {
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_sync', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	return err
}
