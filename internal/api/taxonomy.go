package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ahaampo5/blog/internal/blog"
)

func (c *Client) Categories(ctx context.Context) ([]blog.Category, error) {
	var cats []blog.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &cats)
	return cats, err
}

func (c *Client) Category(ctx context.Context, id string) (blog.Category, error) {
	var cat blog.Category
	err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, nil, &cat)
	return cat, err
}

func (c *Client) CreateCategory(ctx context.Context, req blog.CreateCategoryRequest) (blog.Category, error) {
	var cat blog.Category
	err := c.do(ctx, http.MethodPost, "/categories", nil, req, &cat)
	return cat, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req blog.UpdateCategoryRequest) (blog.Category, error) {
	var cat blog.Category
	err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), nil, req, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) Tags(ctx context.Context) ([]blog.Tag, error) {
	var tags []blog.Tag
	err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &tags)
	return tags, err
}

func (c *Client) Tag(ctx context.Context, id string) (blog.Tag, error) {
	var tag blog.Tag
	err := c.do(ctx, http.MethodGet, "/tags/"+url.PathEscape(id), nil, nil, &tag)
	return tag, err
}

func (c *Client) CreateTag(ctx context.Context, req blog.CreateTagRequest) (blog.Tag, error) {
	var tag blog.Tag
	err := c.do(ctx, http.MethodPost, "/tags", nil, req, &tag)
	return tag, err
}

func (c *Client) UpdateTag(ctx context.Context, id string, req blog.CreateTagRequest) (blog.Tag, error) {
	var tag blog.Tag
	err := c.do(ctx, http.MethodPut, "/tags/"+url.PathEscape(id), nil, req, &tag)
	return tag, err
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tags/"+url.PathEscape(id), nil, nil, nil)
}
