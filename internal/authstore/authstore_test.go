package authstore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ahaampo5/blog/internal/blog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func adminUser() blog.User {
	return blog.User{ID: "1", Username: "admin", Email: "admin@example.com", IsAdmin: true}
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)

	if err := s.Save("tok-123", adminUser()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if got := s.Token(); got != "tok-123" {
		t.Errorf("Token = %q, want tok-123", got)
	}
	u, ok := s.User()
	if !ok {
		t.Fatal("expected stored user")
	}
	if u.Username != "admin" || !u.IsAdmin {
		t.Errorf("unexpected user: %+v", u)
	}
	if !s.IsAuthenticated() {
		t.Error("expected IsAuthenticated after save")
	}
	if !s.IsAdmin() {
		t.Error("expected IsAdmin for admin user")
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)
	if err := s.Save("tok", adminUser()); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.Clear()

	if s.Token() != "" {
		t.Error("expected empty token after clear")
	}
	if _, ok := s.User(); ok {
		t.Error("expected no user after clear")
	}
	if s.IsAuthenticated() || s.IsAdmin() {
		t.Error("expected anonymous state after clear")
	}
}

func TestMalformedUserTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := os.WriteFile(filepath.Join(dir, userFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if _, ok := s.User(); ok {
		t.Error("expected malformed user data to read as absent")
	}
	if s.IsAdmin() {
		t.Error("expected IsAdmin false with malformed user data")
	}
}

func TestMissingStateDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does", "not", "exist"))
	if s.Token() != "" {
		t.Error("expected empty token for missing dir")
	}
	if _, ok := s.User(); ok {
		t.Error("expected no user for missing dir")
	}
}

func TestIsAdminFalseForRegularUser(t *testing.T) {
	s := testStore(t)
	u := adminUser()
	u.IsAdmin = false
	if err := s.Save("tok", u); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.IsAdmin() {
		t.Error("expected IsAdmin false for non-admin user")
	}
}

func TestExpiry(t *testing.T) {
	s := testStore(t)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	if err := s.Save(unsignedJWT(t, exp), adminUser()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.Expiry()
	if !ok {
		t.Fatal("expected expiry from JWT token")
	}
	if !got.Equal(exp) {
		t.Errorf("Expiry = %v, want %v", got, exp)
	}
}

func TestExpiryOpaqueToken(t *testing.T) {
	s := testStore(t)
	if err := s.Save("not-a-jwt", adminUser()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := s.Expiry(); ok {
		t.Error("expected no expiry for opaque token")
	}
}

// unsignedJWT builds a syntactically valid JWT with only an exp claim.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	enc := func(v any) string {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(data)
	}
	header := enc(map[string]string{"alg": "none", "typ": "JWT"})
	claims := enc(map[string]int64{"exp": exp.Unix()})
	return fmt.Sprintf("%s.%s.", header, claims)
}
