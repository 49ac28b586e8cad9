package overview

import (
	"context"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
	"github.com/leapstack-labs/doltctl/internal/ui/views"
)

// Handlers provides HTTP handlers for the overview feature.
type Handlers struct {
	repo     *dolt.Repo
	database string
	notifier *notifier.Notifier
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo *dolt.Repo, database string, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		repo:     repo,
		database: database,
		notifier: notify,
		isDev:    isDev,
	}
}

// OverviewPage renders the landing page with the full repo state.
func (h *Handlers) OverviewPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.buildOverviewData(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := views.Page{
		Title:    "Overview",
		Active:   "overview",
		Database: h.database,
		Dev:      h.isDev,
		Data:     data,
	}
	if err := views.Render(w, "overview", page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// OverviewUpdates is the long-lived SSE endpoint behind the overview page.
// Initial state comes from the page render; this stream only re-sends the
// status fragment when the repo changes.
func (h *Handlers) OverviewUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.patchStatus(ctx, sse); err != nil {
				_ = sse.ConsoleError(err)
				// Keep the stream open; the next ping retries.
			}
		}
	}
}

func (h *Handlers) patchStatus(ctx context.Context, sse *datastar.ServerSentEventGenerator) error {
	data, err := h.buildOverviewData(ctx)
	if err != nil {
		return err
	}
	frag, err := views.Fragment("overview", "repo-status", data)
	if err != nil {
		return err
	}
	return sse.PatchElements(frag)
}

// buildOverviewData assembles the view model for the page and its
// fragment.
func (h *Handlers) buildOverviewData(ctx context.Context) (*OverviewData, error) {
	branch, err := h.repo.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := h.repo.Status(ctx, true)
	if err != nil {
		return nil, err
	}

	branches, err := h.repo.Branches(ctx)
	if err != nil {
		return nil, err
	}

	remotes, err := h.repo.Remotes(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]BranchRow, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, BranchRow{BranchInfo: b, Current: b.Name == branch})
	}

	return &OverviewData{
		Branch:      branch,
		Database:    h.database,
		RemoteCount: len(remotes),
		WorkingSet:  entries,
		Branches:    rows,
	}, nil
}
