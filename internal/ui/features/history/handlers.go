package history

import (
	"net/http"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/ui/views"
)

// historyLimit caps the listing; older commits stay reachable through
// doltctl log or SQL.
const historyLimit = 50

// Handlers provides HTTP handlers for the history feature.
type Handlers struct {
	repo     *dolt.Repo
	database string
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo *dolt.Repo, database string, isDev bool) *Handlers {
	return &Handlers{
		repo:     repo,
		database: database,
		isDev:    isDev,
	}
}

// HistoryPage renders the latest commits, newest first.
func (h *Handlers) HistoryPage(w http.ResponseWriter, r *http.Request) {
	commits, err := h.repo.Log(r.Context(), historyLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := views.Page{
		Title:    "History",
		Active:   "history",
		Database: h.database,
		Dev:      h.isDev,
		Data:     &HistoryData{Commits: commits},
	}
	if err := views.Render(w, "history", page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
