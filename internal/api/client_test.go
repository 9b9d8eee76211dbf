package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahaampo5/blog/internal/authstore"
	"github.com/ahaampo5/blog/internal/blog"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *authstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := authstore.New(t.TempDir())
	return New(srv.URL, store, opts...), store
}

func TestLoginStoresSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var creds blog.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "admin", creds.Username)
		require.Equal(t, "password123", creds.Password)

		json.NewEncoder(w).Encode(blog.AuthResponse{
			AccessToken: "tok",
			TokenType:   "bearer",
			User:        blog.User{ID: "1", Username: "admin", IsAdmin: true},
		})
	})
	client, store := newTestClient(t, handler)

	resp, err := client.Login(context.Background(), blog.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)

	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.IsAdmin())
}

func TestLoginFailureLeavesAnonymous(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	})
	client, store := newTestClient(t, handler)

	_, err := client.Login(context.Background(), blog.LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.False(t, store.IsAuthenticated())
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(blog.User{ID: "1", Username: "admin"})
	})
	client, store := newTestClient(t, handler)
	require.NoError(t, store.Save("tok-abc", blog.User{ID: "1", Username: "admin"}))

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestNoBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(blog.Page[blog.PostWithDetails]{})
	})
	client, _ := newTestClient(t, handler)

	_, err := client.PublicPosts(context.Background(), ListOpts{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedClearsStoreAndFiresHookOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	var hookCalls int
	client, store := newTestClient(t, handler, WithOnUnauthorized(func() { hookCalls++ }))
	require.NoError(t, store.Save("stale-tok", blog.User{ID: "1", IsAdmin: true}))

	_, err := client.Posts(context.Background(), ListOpts{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthorized), "error must still surface to the caller")

	assert.False(t, store.IsAuthenticated(), "401 must clear the token")
	_, ok := store.User()
	assert.False(t, ok, "401 must clear the user record")
	assert.Equal(t, 1, hookCalls)
}

func TestUnauthorizedFromAnyResource(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, store := newTestClient(t, handler)

	calls := []func() error{
		func() error { return client.DeleteTag(context.Background(), "1") },
		func() error { _, err := client.Category(context.Background(), "2"); return err },
		func() error {
			_, err := client.CreatePost(context.Background(), blog.CreatePostRequest{Title: "x", Content: "y"})
			return err
		},
	}
	for _, call := range calls {
		require.NoError(t, store.Save("tok", blog.User{ID: "1"}))
		require.Error(t, call())
		assert.False(t, store.IsAuthenticated())
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{"not found", 404, `{"detail": "Post not found"}`, KindNotFound, "Post not found"},
		{"validation 422", 422, `{"detail": "title must not be empty"}`, KindValidation, "title must not be empty"},
		{"validation 400", 400, `{"message": "bad category id"}`, KindValidation, "bad category id"},
		{"server error", 500, ``, KindServer, "request failed"},
		{"non-json body", 502, `bad gateway`, KindServer, "request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			client, _ := newTestClient(t, handler)

			_, err := client.PublicPost(context.Background(), "42")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	store := authstore.New(t.TempDir())
	client := New("http://127.0.0.1:1", store)

	_, err := client.Categories(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
}

func TestListOptsEncoding(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(blog.Page[blog.PostWithDetails]{Page: 2, Size: 5})
	})
	client, _ := newTestClient(t, handler)

	_, err := client.PublicPosts(context.Background(), ListOpts{
		Page:     2,
		Size:     5,
		Category: "cat-1",
		Tags:     []string{"go", "web"},
		Search:   "generics",
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "size=5")
	assert.Contains(t, gotQuery, "category=cat-1")
	assert.Contains(t, gotQuery, "tags=go")
	assert.Contains(t, gotQuery, "tags=web")
	assert.Contains(t, gotQuery, "search=generics")
}

func TestEmptySearchResultIsNotAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(blog.Page[blog.PostWithDetails]{Items: []blog.PostWithDetails{}, Page: 1, Size: 10})
	})
	client, _ := newTestClient(t, handler)

	page, err := client.PublicPosts(context.Background(), ListOpts{Search: "nonexistent-term"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 0)
}

func TestRequestIDHeader(t *testing.T) {
	var ids []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode([]blog.Tag{})
	})
	client, _ := newTestClient(t, handler)

	for i := 0; i < 2; i++ {
		_, err := client.Tags(context.Background())
		require.NoError(t, err)
	}
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestUpload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "cover.png", header.Filename)

		json.NewEncoder(w).Encode(blog.UploadResponse{Filename: "cover.png", URL: "/static/cover.png"})
	})
	client, _ := newTestClient(t, handler)

	resp, err := client.Upload(context.Background(), "cover.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/static/cover.png", resp.URL)
}
