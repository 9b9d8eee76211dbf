package api

import (
	"context"
	"net/http"

	"github.com/ahaampo5/blog/internal/blog"
)

// Login authenticates and persists the returned session. A backend
// that omits the user record still yields a usable session: the
// token alone marks the caller authenticated.
func (c *Client) Login(ctx context.Context, creds blog.LoginRequest) (blog.AuthResponse, error) {
	var resp blog.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return blog.AuthResponse{}, err
	}
	if resp.User.Username == "" {
		resp.User.Username = creds.Username
	}
	if err := c.store.Save(resp.AccessToken, resp.User); err != nil {
		return blog.AuthResponse{}, err
	}
	return resp, nil
}

// Me fetches the current user from the backend.
func (c *Client) Me(ctx context.Context) (blog.User, error) {
	var u blog.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return blog.User{}, err
	}
	return u, nil
}

// Logout drops the local session. The backend keeps no session state
// for bearer tokens, so no network call is involved.
func (c *Client) Logout() {
	c.store.Clear()
}
