package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahaampo5/blog/internal/api"
	"github.com/ahaampo5/blog/internal/authstore"
	"github.com/ahaampo5/blog/internal/config"
	"github.com/ahaampo5/blog/internal/content"
	"github.com/ahaampo5/blog/internal/offline"
	"github.com/ahaampo5/blog/internal/resolver"
	"github.com/ahaampo5/blog/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := authstore.New(authstore.DefaultPath())

	// The client signals expired sessions to the running app
	// through this channel; the views react by opening the login
	// view.
	unauthorized := make(chan struct{}, 1)
	client := api.New(cfg.ResolvedBaseURL(), store,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeoutDuration()}),
		api.WithRateLimit(cfg.RateLimit),
		api.WithOnUnauthorized(func() {
			select {
			case unauthorized <- struct{}{}:
			default:
			}
		}),
	)
	svc := content.NewService(client, resolver.New(cfg.CacheTTLDuration()))

	var snapshot *offline.Store
	if cfg.Offline.Enabled || flagOffline {
		snapshot, err = offline.Open(config.OfflineCachePath())
		if err != nil {
			if flagOffline {
				return fmt.Errorf("opening offline snapshot: %w", err)
			}
			// Snapshot is an enhancement online; browsing works
			// without it.
			fmt.Fprintf(os.Stderr, "[warn] offline snapshot unavailable: %v\n", err)
		} else {
			defer snapshot.Close()
			snapshot.Prune(cfg.RetentionDuration())
		}
	}

	return tui.Run(tui.RunOpts{
		Cfg:          cfg,
		Svc:          svc,
		Client:       client,
		Store:        store,
		Snapshot:     snapshot,
		Offline:      flagOffline,
		Unauthorized: unauthorized,
	})
}
