package tui

import (
	"github.com/ahaampo5/blog/internal/blog"
)

type postsLoadedMsg struct {
	page  blog.Page[blog.PostWithDetails]
	admin bool
}

type categoriesLoadedMsg struct {
	categories []blog.Category
}

type loadErrMsg struct {
	err error
}

type loginDoneMsg struct {
	user blog.User
	err  error
}

// sessionExpiredMsg arrives when any backend call returned 401 and
// the auth store has already been cleared.
type sessionExpiredMsg struct{}
