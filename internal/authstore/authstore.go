// Package authstore persists the session credentials across runs.
//
// Two files live under the state directory: access_token holds the
// raw bearer token, user.json the serialized user record. Only the
// login, logout and unauthorized-response paths write here.
package authstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ahaampo5/blog/internal/blog"
)

const (
	tokenFile = "access_token"
	userFile  = "user.json"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

// DefaultPath returns the per-user state directory for session data.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "blogctl")
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Token returns the stored bearer token, or "" when absent.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return string(data)
}

// User returns the stored user record. Missing or malformed data is
// treated as no user, never as an error.
func (s *Store) User() (blog.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return blog.User{}, false
	}
	var u blog.User
	if err := json.Unmarshal(data, &u); err != nil {
		return blog.User{}, false
	}
	return u, true
}

// Save writes the token and user together. Callers never observe one
// without the other once Save returns.
func (s *Store) Save(token string, user blog.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(s.dir, tokenFile), []byte(token)); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, userFile), userData)
}

// Clear removes both the token and the user record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(filepath.Join(s.dir, tokenFile))
	os.Remove(filepath.Join(s.dir, userFile))
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.IsAdmin
}

// Expiry extracts the exp claim from the stored token without
// verifying the signature. Display only; the backend is the
// authority on whether the token is still accepted.
func (s *Store) Expiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
