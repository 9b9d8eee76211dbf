package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ahaampo5/blog/internal/blog"
)

// ListOpts narrows a paginated post listing. Zero values mean "no
// filter"; page and size fall back to the backend defaults.
type ListOpts struct {
	Page     int
	Size     int
	Category string
	Tags     []string
	Search   string
}

func (o ListOpts) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		q.Set("size", strconv.Itoa(o.Size))
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	for _, tag := range o.Tags {
		q.Add("tags", tag)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// PublicPosts lists published posts; no authentication required.
func (c *Client) PublicPosts(ctx context.Context, opts ListOpts) (blog.Page[blog.PostWithDetails], error) {
	var page blog.Page[blog.PostWithDetails]
	err := c.do(ctx, http.MethodGet, "/posts/public", opts.query(), nil, &page)
	return page, err
}

// PublicPost fetches one published post by id.
func (c *Client) PublicPost(ctx context.Context, id string) (blog.PostWithDetails, error) {
	var post blog.PostWithDetails
	err := c.do(ctx, http.MethodGet, "/posts/public/"+url.PathEscape(id), nil, nil, &post)
	return post, err
}

// Posts lists all posts, drafts included. Admin only.
func (c *Client) Posts(ctx context.Context, opts ListOpts) (blog.Page[blog.PostWithDetails], error) {
	var page blog.Page[blog.PostWithDetails]
	err := c.do(ctx, http.MethodGet, "/posts", opts.query(), nil, &page)
	return page, err
}

func (c *Client) Post(ctx context.Context, id string) (blog.PostWithDetails, error) {
	var post blog.PostWithDetails
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, req blog.CreatePostRequest) (blog.Post, error) {
	var post blog.Post
	err := c.do(ctx, http.MethodPost, "/posts", nil, req, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, req blog.UpdatePostRequest) (blog.Post, error) {
	var post blog.Post
	err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), nil, req, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil, nil)
}
