package remotes

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
	"github.com/leapstack-labs/doltctl/internal/ui/views"
)

const sessionName = "doltctl"

// Handlers provides HTTP handlers for the remotes feature.
type Handlers struct {
	repo     *dolt.Repo
	database string
	sessions sessions.Store
	notifier *notifier.Notifier
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo *dolt.Repo, database string, sessionStore sessions.Store, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		repo:     repo,
		database: database,
		sessions: sessionStore,
		notifier: notify,
		isDev:    isDev,
	}
}

// RemotesPage renders the remotes listing and pull form, surfacing any
// flash left by a prior submit.
func (h *Handlers) RemotesPage(w http.ResponseWriter, r *http.Request) {
	remotes, err := h.repo.Remotes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	flash := h.popFlash(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := views.Page{
		Title:    "Remotes",
		Active:   "remotes",
		Database: h.database,
		Dev:      h.isDev,
		Flash:    flash,
		Data:     &RemotesData{Remotes: remotes},
	}
	if err := views.Render(w, "remotes", page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PullSubmit runs a pull, or just a fetch, against the selected remote.
// The outcome becomes a session flash and the browser is sent back to the
// remotes page.
func (h *Handlers) PullSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	remote := r.PostFormValue("remote")
	branch := r.PostFormValue("branch")
	fetchOnly := r.PostFormValue("fetch_only") == "on"

	if remote == "" {
		h.flash(w, r, "error", "Choose a remote to pull from.")
		h.redirectBack(w, r)
		return
	}

	ctx := r.Context()
	if fetchOnly {
		msg, err := h.repo.Fetch(ctx, remote)
		if err != nil {
			h.flash(w, r, "error", err.Error())
		} else {
			h.flash(w, r, "success", msg)
		}
		h.redirectBack(w, r)
		return
	}

	result, err := h.repo.Pull(ctx, remote, branch)
	switch {
	case err != nil:
		h.flash(w, r, "error", err.Error())
	case result.Conflicts > 0:
		h.flash(w, r, "error", result.Message)
		h.notifier.Broadcast()
	default:
		h.flash(w, r, "success", result.Message)
		h.notifier.Broadcast()
	}
	h.redirectBack(w, r)
}

func (h *Handlers) redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/remotes", http.StatusSeeOther)
}

// flash queues a one-shot message for the next page render. A stale or
// tampered cookie still yields a usable fresh session, so the Get error
// is ignored.
func (h *Handlers) flash(w http.ResponseWriter, r *http.Request, kind, text string) {
	session, _ := h.sessions.Get(r, sessionName)
	session.AddFlash(text, "flash_"+kind)
	_ = session.Save(r, w)
}

// popFlash drains the pending flash, if any. Reading flashes mutates the
// session, so it is saved back even when nothing was queued.
func (h *Handlers) popFlash(w http.ResponseWriter, r *http.Request) *views.Flash {
	session, _ := h.sessions.Get(r, sessionName)

	errTexts := session.Flashes("flash_error")
	okTexts := session.Flashes("flash_success")
	_ = session.Save(r, w)

	if len(errTexts) > 0 {
		if text, ok := errTexts[0].(string); ok {
			return &views.Flash{Kind: "error", Text: text}
		}
	}
	if len(okTexts) > 0 {
		if text, ok := okTexts[0].(string); ok {
			return &views.Flash{Kind: "success", Text: text}
		}
	}
	return nil
}
