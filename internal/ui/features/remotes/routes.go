// Package remotes provides the remotes page of the admin UI: the
// configured remotes plus a pull form whose outcome lands in a session
// flash.
package remotes

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
)

// SetupRoutes configures routes for the remotes feature.
func SetupRoutes(
	router chi.Router,
	repo *dolt.Repo,
	database string,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
	isDev bool,
) error {
	handlers := NewHandlers(repo, database, sessionStore, notify, isDev)

	router.Get("/remotes", handlers.RemotesPage)
	router.Post("/remotes/pull", handlers.PullSubmit)

	return nil
}
