// Package history provides the commit log page of the admin UI.
package history

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/doltctl/internal/dolt"
)

// SetupRoutes configures routes for the history feature.
func SetupRoutes(router chi.Router, repo *dolt.Repo, database string, isDev bool) error {
	handlers := NewHandlers(repo, database, isDev)

	router.Get("/history", handlers.HistoryPage)

	return nil
}
