// Package content binds the backend client to the resolution cache.
// Reads go through the cache under canonical keys; mutations call the
// backend and, only once they succeed, invalidate the key families
// the mutated resource could appear in.
package content

import (
	"context"
	"strconv"
	"strings"

	"github.com/ahaampo5/blog/internal/api"
	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/resolver"
)

type Service struct {
	client *api.Client
	cache  *resolver.Cache
}

func NewService(client *api.Client, cache *resolver.Cache) *Service {
	return &Service{client: client, cache: cache}
}

// listKey renders the filter set into a stable cache key suffix.
func listKey(opts api.ListOpts) string {
	parts := []string{
		"page=" + strconv.Itoa(opts.Page),
		"size=" + strconv.Itoa(opts.Size),
	}
	if opts.Category != "" {
		parts = append(parts, "category="+opts.Category)
	}
	if len(opts.Tags) > 0 {
		parts = append(parts, "tags="+strings.Join(opts.Tags, ","))
	}
	if opts.Search != "" {
		parts = append(parts, "search="+opts.Search)
	}
	return strings.Join(parts, "&")
}

func (s *Service) PublicPosts(ctx context.Context, opts api.ListOpts) (blog.Page[blog.PostWithDetails], error) {
	key := resolver.Key("posts", "public", listKey(opts))
	return resolver.Resolve(ctx, s.cache, key, func(ctx context.Context) (blog.Page[blog.PostWithDetails], error) {
		return s.client.PublicPosts(ctx, opts)
	})
}

func (s *Service) PublicPost(ctx context.Context, id string) (blog.PostWithDetails, error) {
	key := resolver.Key("post", "public", id)
	return resolver.Resolve(ctx, s.cache, key, func(ctx context.Context) (blog.PostWithDetails, error) {
		return s.client.PublicPost(ctx, id)
	})
}

func (s *Service) Posts(ctx context.Context, opts api.ListOpts) (blog.Page[blog.PostWithDetails], error) {
	key := resolver.Key("posts", "admin", listKey(opts))
	return resolver.Resolve(ctx, s.cache, key, func(ctx context.Context) (blog.Page[blog.PostWithDetails], error) {
		return s.client.Posts(ctx, opts)
	})
}

func (s *Service) Post(ctx context.Context, id string) (blog.PostWithDetails, error) {
	key := resolver.Key("post", "admin", id)
	return resolver.Resolve(ctx, s.cache, key, func(ctx context.Context) (blog.PostWithDetails, error) {
		return s.client.Post(ctx, id)
	})
}

func (s *Service) Categories(ctx context.Context) ([]blog.Category, error) {
	return resolver.Resolve(ctx, s.cache, resolver.Key("categories"), func(ctx context.Context) ([]blog.Category, error) {
		return s.client.Categories(ctx)
	})
}

func (s *Service) Category(ctx context.Context, id string) (blog.Category, error) {
	return resolver.Resolve(ctx, s.cache, resolver.Key("category", id), func(ctx context.Context) (blog.Category, error) {
		return s.client.Category(ctx, id)
	})
}

func (s *Service) Tags(ctx context.Context) ([]blog.Tag, error) {
	return resolver.Resolve(ctx, s.cache, resolver.Key("tags"), func(ctx context.Context) ([]blog.Tag, error) {
		return s.client.Tags(ctx)
	})
}

func (s *Service) Tag(ctx context.Context, id string) (blog.Tag, error) {
	return resolver.Resolve(ctx, s.cache, resolver.Key("tag", id), func(ctx context.Context) (blog.Tag, error) {
		return s.client.Tag(ctx, id)
	})
}

// Refresh drops every cached read so the next resolves hit the
// backend. Bound to the manual refresh key in the views.
func (s *Service) Refresh() {
	s.invalidateCategories()
	s.invalidateTags()
}

// invalidatePosts evicts every post listing and detail entry. Post
// listings can be filtered by category or tag, so taxonomy mutations
// call this too.
func (s *Service) invalidatePosts() {
	s.cache.Invalidate("posts")
	s.cache.Invalidate("post")
}

func (s *Service) invalidateCategories() {
	s.cache.Invalidate("categories")
	s.cache.Invalidate("category")
	s.invalidatePosts()
}

func (s *Service) invalidateTags() {
	s.cache.Invalidate("tags")
	s.cache.Invalidate("tag")
	s.invalidatePosts()
}

func (s *Service) CreatePost(ctx context.Context, req blog.CreatePostRequest) (blog.Post, error) {
	post, err := s.client.CreatePost(ctx, req)
	if err != nil {
		return blog.Post{}, err
	}
	s.invalidatePosts()
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, req blog.UpdatePostRequest) (blog.Post, error) {
	post, err := s.client.UpdatePost(ctx, id, req)
	if err != nil {
		return blog.Post{}, err
	}
	s.invalidatePosts()
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.client.DeletePost(ctx, id); err != nil {
		return err
	}
	s.invalidatePosts()
	return nil
}

// SetPublished flips a post's published flag.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (blog.Post, error) {
	return s.UpdatePost(ctx, id, blog.UpdatePostRequest{IsPublished: &published})
}

func (s *Service) CreateCategory(ctx context.Context, req blog.CreateCategoryRequest) (blog.Category, error) {
	cat, err := s.client.CreateCategory(ctx, req)
	if err != nil {
		return blog.Category{}, err
	}
	s.invalidateCategories()
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req blog.UpdateCategoryRequest) (blog.Category, error) {
	cat, err := s.client.UpdateCategory(ctx, id, req)
	if err != nil {
		return blog.Category{}, err
	}
	s.invalidateCategories()
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories()
	return nil
}

func (s *Service) CreateTag(ctx context.Context, req blog.CreateTagRequest) (blog.Tag, error) {
	tag, err := s.client.CreateTag(ctx, req)
	if err != nil {
		return blog.Tag{}, err
	}
	s.invalidateTags()
	return tag, nil
}

func (s *Service) UpdateTag(ctx context.Context, id string, req blog.CreateTagRequest) (blog.Tag, error) {
	tag, err := s.client.UpdateTag(ctx, id, req)
	if err != nil {
		return blog.Tag{}, err
	}
	s.invalidateTags()
	return tag, nil
}

func (s *Service) DeleteTag(ctx context.Context, id string) error {
	if err := s.client.DeleteTag(ctx, id); err != nil {
		return err
	}
	s.invalidateTags()
	return nil
}
