// Package overview provides the landing page of the admin UI: active
// branch, working set and branch list, kept fresh over SSE.
package overview

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
)

// SetupRoutes configures routes for the overview feature.
func SetupRoutes(router chi.Router, repo *dolt.Repo, database string, notify *notifier.Notifier, isDev bool) error {
	handlers := NewHandlers(repo, database, notify, isDev)

	router.Get("/", handlers.OverviewPage)
	router.Get("/updates", handlers.OverviewUpdates)

	return nil
}
