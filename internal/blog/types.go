// Package blog defines the entity shapes exchanged with the blog backend.
package blog

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Summary       string    `json:"summary,omitempty"`
	CategoryID    string    `json:"category_id,omitempty"`
	Tags          []string  `json:"tags"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	IsPublished   bool      `json:"is_published"`
	Views         int       `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostWithDetails is a post with its category and tag references
// resolved by the backend.
type PostWithDetails struct {
	Post
	Category   *Category `json:"category,omitempty"`
	TagDetails []Tag     `json:"tag_details,omitempty"`
}

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Summary       string   `json:"summary,omitempty"`
	CategoryID    string   `json:"category_id,omitempty"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	IsPublished   bool     `json:"is_published"`
}

// UpdatePostRequest carries only the fields to change; nil means
// leave the field as it is.
type UpdatePostRequest struct {
	Title         *string  `json:"title,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Summary       *string  `json:"summary,omitempty"`
	CategoryID    *string  `json:"category_id,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
	IsPublished   *bool    `json:"is_published,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

// UploadResponse is the backend's answer to a multipart file upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
