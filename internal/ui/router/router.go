// Package router sets up HTTP routes for the admin UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	historyFeature "github.com/leapstack-labs/doltctl/internal/ui/features/history"
	overviewFeature "github.com/leapstack-labs/doltctl/internal/ui/features/overview"
	remotesFeature "github.com/leapstack-labs/doltctl/internal/ui/features/remotes"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
	"github.com/leapstack-labs/doltctl/internal/ui/resources"
)

// SetupRoutes configures all routes for the admin UI server. The updates
// notifier feeds data-refresh SSE streams; reload drives dev-mode browser
// reloads.
func SetupRoutes(
	router chi.Router,
	repo *dolt.Repo,
	database string,
	sessionStore *sessions.CookieStore,
	updates *notifier.Notifier,
	reload *notifier.Notifier,
	isDev bool,
) error {
	if isDev {
		setupReload(router, reload)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := overviewFeature.SetupRoutes(router, repo, database, updates, isDev); err != nil {
		return err
	}

	if err := historyFeature.SetupRoutes(router, repo, database, isDev); err != nil {
		return err
	}

	if err := remotesFeature.SetupRoutes(router, repo, database, sessionStore, updates, isDev); err != nil {
		return err
	}

	return nil
}

// setupReload wires the dev-mode reload stream. Every page holds one
// /reload connection open; a ping on the reload notifier, or an external
// GET /hotreload, refreshes the browser. The first connection after
// process start reloads once so a page served by the previous binary
// catches up.
func setupReload(router chi.Router, reload *notifier.Notifier) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		ping := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(ping)

		ch := reload.Subscribe()
		defer reload.Unsubscribe(ch)

		select {
		case <-ch:
			ping()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reload.Broadcast()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
