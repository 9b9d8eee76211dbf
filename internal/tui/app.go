// Package tui is the interactive browse and admin surface. Views
// never talk to the backend directly; every read goes through the
// content service so the resolution cache sees all traffic.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahaampo5/blog/internal/api"
	"github.com/ahaampo5/blog/internal/authstore"
	"github.com/ahaampo5/blog/internal/blog"
	"github.com/ahaampo5/blog/internal/config"
	"github.com/ahaampo5/blog/internal/content"
	"github.com/ahaampo5/blog/internal/gate"
	"github.com/ahaampo5/blog/internal/offline"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeFilter
	modeLogin
	modeAdmin
	modeHelp
)

type App struct {
	cfg      *config.Config
	svc      *content.Service
	client   *api.Client
	store    *authstore.Store
	snapshot *offline.Store

	mode   mode
	focus  focusPane
	cursor int

	posts   []blog.PostWithDetails
	total   int
	curPage int
	pages   int

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	filterBar   filterBar
	login       loginForm

	// State
	loading       bool
	offlineMode   bool
	previewScroll int
	currentDate   string
	err           error

	unauthorized <-chan struct{}
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg      *config.Config
	Svc      *content.Service
	Client   *api.Client
	Store    *authstore.Store
	Snapshot *offline.Store
	Offline  bool
	// Unauthorized delivers one value per backend call that came
	// back 401; the auth store is already cleared when it fires.
	Unauthorized <-chan struct{}
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search posts..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:          opts.Cfg,
		svc:          opts.Svc,
		client:       opts.Client,
		store:        opts.Store,
		snapshot:     opts.Snapshot,
		offlineMode:  opts.Offline,
		filterBar:    newFilterBar(),
		searchInput:  ti,
		spinner:      sp,
		login:        newLoginForm(),
		curPage:      1,
		currentDate:  time.Now().Format("Jan 2"),
		unauthorized: opts.Unauthorized,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadPostsCmd(), a.loadCategoriesCmd()}
	if a.unauthorized != nil {
		cmds = append(cmds, a.listenUnauthorized())
	}
	return tea.Batch(cmds...)
}

// listenUnauthorized re-arms after every delivery so each expired
// session lands the user on the login view exactly once.
func (a *App) listenUnauthorized() tea.Cmd {
	ch := a.unauthorized
	return func() tea.Msg {
		<-ch
		return sessionExpiredMsg{}
	}
}

// loadPostsCmd captures current query state into the closure to avoid
// races with later keystrokes.
func (a *App) loadPostsCmd() tea.Cmd {
	if a.offlineMode {
		return a.loadSnapshotCmd()
	}

	opts := api.ListOpts{
		Page:     a.curPage,
		Size:     a.cfg.GetPageSize(),
		Category: a.filterBar.activeID,
		Search:   a.searchInput.Value(),
	}
	admin := a.mode == modeAdmin
	svc := a.svc
	snapshot := a.snapshot
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var (
			page blog.Page[blog.PostWithDetails]
			err  error
		)
		if admin {
			page, err = svc.Posts(ctx, opts)
		} else {
			page, err = svc.PublicPosts(ctx, opts)
		}
		if err != nil {
			return loadErrMsg{err: err}
		}

		// Write-through to the offline snapshot; best effort.
		if !admin && snapshot != nil {
			rows := make([]offline.Post, len(page.Items))
			now := time.Now()
			for i, p := range page.Items {
				rows[i] = offline.FromDetails(p, now)
			}
			if err := snapshot.UpsertPosts(rows); err == nil {
				snapshot.SetLastSync()
			}
		}

		return postsLoadedMsg{page: page, admin: admin}
	}
}

func (a *App) loadSnapshotCmd() tea.Cmd {
	snapshot := a.snapshot
	opts := offline.QueryOpts{
		Category: a.filterBar.activeLabel(),
		Search:   a.searchInput.Value(),
	}
	if opts.Category == "All" {
		opts.Category = ""
	}
	return func() tea.Msg {
		if snapshot == nil {
			return loadErrMsg{err: fmt.Errorf("offline snapshot not available")}
		}
		rows, err := snapshot.GetPosts(opts)
		if err != nil {
			return loadErrMsg{err: err}
		}
		items := make([]blog.PostWithDetails, len(rows))
		for i, r := range rows {
			items[i] = snapshotToDetails(r)
		}
		return postsLoadedMsg{page: blog.Page[blog.PostWithDetails]{
			Items: items, Total: len(items), Page: 1, Size: len(items), Pages: 1,
		}}
	}
}

func snapshotToDetails(r offline.Post) blog.PostWithDetails {
	p := blog.PostWithDetails{
		Post: blog.Post{
			ID:          r.ID,
			Title:       r.Title,
			Content:     r.Content,
			Summary:     r.Summary,
			Views:       r.Views,
			IsPublished: true,
			CreatedAt:   r.CreatedAt,
		},
	}
	if r.Category != "" {
		p.Category = &blog.Category{Name: r.Category}
	}
	for _, name := range r.Tags {
		p.TagDetails = append(p.TagDetails, blog.Tag{Name: name})
	}
	return p
}

func (a *App) loadCategoriesCmd() tea.Cmd {
	if a.offlineMode {
		return nil
	}
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		cats, err := svc.Categories(ctx)
		if err != nil {
			// The filter bar just stays empty; browsing works
			// without it.
			return nil
		}
		return categoriesLoadedMsg{categories: cats}
	}
}

func (a *App) loginCmd() tea.Cmd {
	client := a.client
	creds := blog.LoginRequest{
		Username: a.login.username.Value(),
		Password: a.login.password.Value(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := client.Login(ctx, creds)
		return loginDoneMsg{user: resp.User, err: err}
	}
}

func (a *App) deletePostCmd(id string) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.DeletePost(ctx, id); err != nil {
			return loadErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) togglePublishCmd(p blog.PostWithDetails) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := svc.SetPublished(ctx, p.ID, !p.IsPublished); err != nil {
			return loadErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case postsLoadedMsg:
		a.loading = false
		a.posts = msg.page.Items
		a.total = msg.page.Total
		a.pages = msg.page.Pages
		if a.cursor >= len(a.posts) {
			a.cursor = max(0, len(a.posts)-1)
		}
		return a, nil

	case categoriesLoadedMsg:
		a.filterBar.setCategories(msg.categories)
		return a, nil

	case loadErrMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case loginDoneMsg:
		a.login.busy = false
		if msg.err != nil {
			a.login.errMsg = errText(msg.err)
			a.login.reset()
			return a, nil
		}
		a.login.errMsg = ""
		a.login.reset()
		return a.enterAdmin()

	case sessionExpiredMsg:
		a.mode = modeLogin
		a.login.errMsg = "Session expired, sign in again"
		var rearm tea.Cmd
		if a.unauthorized != nil {
			rearm = a.listenUnauthorized()
		}
		return a, rearm

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// errText keeps backend messages short enough for the status line.
func errText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeLogin:
		return a.handleLoginKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeBrowse
		}
		return a, nil
	}

	// Browse and admin modes
	switch msg.String() {
	case "q":
		if a.mode == modeAdmin {
			a.mode = modeBrowse
			a.curPage = 1
			a.cursor = 0
			return a, a.reload()
		}
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.posts)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "n", "right":
		if a.curPage < a.pages {
			a.curPage++
			a.cursor = 0
			return a, a.reload()
		}
		return a, nil
	case "p", "left":
		if a.curPage > 1 {
			a.curPage--
			a.cursor = 0
			return a, a.reload()
		}
		return a, nil
	case "/":
		if a.offlineMode || a.mode == modeBrowse {
			a.mode = modeSearch
			a.searchInput.Focus()
			return a, textinput.Blink
		}
		return a, nil
	case "f":
		if a.mode == modeBrowse && len(a.filterBar.categories) > 0 {
			a.mode = modeFilter
			a.filterBar.filterMode = true
		}
		return a, nil
	case "r":
		if !a.offlineMode && !a.loading {
			a.svc.Refresh()
			return a, a.reload()
		}
		return a, nil
	case "a":
		if a.mode == modeBrowse && !a.offlineMode {
			return a.enterAdmin()
		}
		return a, nil
	case "x":
		if a.mode == modeAdmin && a.cursorValid() {
			return a, tea.Sequence(a.deletePostCmd(a.posts[a.cursor].ID), a.reload())
		}
		return a, nil
	case "u":
		if a.mode == modeAdmin && a.cursorValid() {
			return a, tea.Sequence(a.togglePublishCmd(a.posts[a.cursor]), a.reload())
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

// enterAdmin runs the route gate; denied navigations land on the
// login view or stay on the public browse view.
func (a *App) enterAdmin() (tea.Model, tea.Cmd) {
	switch gate.Decide(a.store.IsAuthenticated(), a.store.IsAdmin(), true) {
	case gate.Allow:
		a.mode = modeAdmin
		a.curPage = 1
		a.cursor = 0
		return a, a.reload()
	case gate.RedirectToLogin:
		a.mode = modeLogin
		return a, textinput.Blink
	default:
		a.mode = modeBrowse
		a.err = fmt.Errorf("admin access required")
		return a, nil
	}
}

func (a *App) cursorValid() bool {
	return len(a.posts) > 0 && a.cursor < len(a.posts)
}

func (a *App) reload() tea.Cmd {
	a.loading = true
	return tea.Batch(a.loadPostsCmd(), a.spinner.Tick)
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBrowse
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.curPage = 1
		return a, a.reload()
	case "enter":
		a.mode = modeBrowse
		a.searchInput.Blur()
		a.curPage = 1
		a.cursor = 0
		return a, a.reload()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeBrowse
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.filterCursor > 0 {
			a.filterBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.filterCursor < len(a.filterBar.categories)-1 {
			a.filterBar.filterCursor++
		}
		return a, nil
	case " ", "enter":
		a.filterBar.toggleCurrent()
		a.cursor = 0
		a.curPage = 1
		return a, a.reload()
	}
	return a, nil
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBrowse
		a.login.errMsg = ""
		a.login.reset()
		return a, nil
	case "tab", "shift+tab":
		a.login.next()
		return a, textinput.Blink
	case "enter":
		if a.login.focused == 0 {
			a.login.next()
			return a, textinput.Blink
		}
		if a.login.username.Value() == "" || a.login.password.Value() == "" {
			a.login.errMsg = "Username and password are required"
			return a, nil
		}
		a.login.busy = true
		a.login.errMsg = ""
		return a, a.loginCmd()
	}

	var cmd tea.Cmd
	if a.login.focused == 0 {
		a.login.username, cmd = a.login.username.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  blogctl")
	}

	if a.mode == modeLogin {
		return a.login.render(a.width, a.height)
	}

	if a.mode == modeHelp {
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	title := "blogctl"
	if a.mode == modeAdmin {
		title = "blogctl · admin"
	}
	headerLeft := headerStyle.Render(title)
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter bar
	filter := a.filterBar.render(a.width)

	// Search bar (replaces filter when searching)
	if a.mode == modeSearch {
		filter = a.searchInput.View()
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.posts, a.cursor, contentHeight, innerListW, a.mode == modeAdmin)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	var selected *blog.PostWithDetails
	if a.cursorValid() {
		selected = &a.posts[a.cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	// Join panes
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	var username string
	if u, ok := a.store.User(); ok {
		username = u.Username
	}
	status := renderStatusBar(statusInfo{
		total:      a.total,
		page:       a.curPage,
		pages:      a.pages,
		filter:     a.filterBar.activeLabel(),
		username:   username,
		offline:    a.offlineMode,
		searching:  a.mode == modeSearch,
		refreshing: a.loading,
	}, a.width)

	if a.loading {
		status = a.spinner.View() + " " + status
	}

	// Error display
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(errText(a.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("blogctl")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate post list\n" +
		"  tab           Switch focus between list and preview\n" +
		"  n/p, →/←     Next / previous page\n\n" +
		dim.Render("Actions") + "\n" +
		"  /             Search posts\n" +
		"  f             Filter by category\n" +
		"  r             Refresh from the backend\n" +
		"  a             Open the admin view (sign-in required)\n\n" +
		dim.Render("Admin View") + "\n" +
		"  u             Publish / unpublish selected post\n" +
		"  x             Delete selected post\n" +
		"  q             Back to browsing\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
