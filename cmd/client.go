package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ahaampo5/blog/internal/api"
	"github.com/ahaampo5/blog/internal/authstore"
	"github.com/ahaampo5/blog/internal/config"
	"github.com/ahaampo5/blog/internal/content"
	"github.com/ahaampo5/blog/internal/gate"
	"github.com/ahaampo5/blog/internal/output"
	"github.com/ahaampo5/blog/internal/resolver"
)

// env bundles the wiring shared by every command: one auth store, one
// client, one resolution cache per process.
type env struct {
	cfg    *config.Config
	store  *authstore.Store
	client *api.Client
	svc    *content.Service
}

func setup() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store := authstore.New(authstore.DefaultPath())
	client := api.New(cfg.ResolvedBaseURL(), store,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeoutDuration()}),
		api.WithRateLimit(cfg.RateLimit),
		api.WithOnUnauthorized(func() {
			output.Fail(os.Stderr, "session expired, run 'blogctl login'")
		}),
	)
	svc := content.NewService(client, resolver.New(cfg.CacheTTLDuration()))

	return &env{cfg: cfg, store: store, client: client, svc: svc}, nil
}

// requireAdmin guards admin commands the same way the TUI guards its
// admin view.
func (e *env) requireAdmin() error {
	switch gate.Decide(e.store.IsAuthenticated(), e.store.IsAdmin(), true) {
	case gate.Allow:
		return nil
	case gate.RedirectToLogin:
		return fmt.Errorf("not signed in: run 'blogctl login'")
	default:
		return fmt.Errorf("admin privileges required")
	}
}
