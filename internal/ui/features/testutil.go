// Package features provides shared test utilities for admin UI feature
// tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/leapstack-labs/doltctl/internal/testutil"
	"github.com/leapstack-labs/doltctl/internal/ui/notifier"
)

// TestFixture holds the dependencies admin UI handler tests need. The repo
// façade is backed by a sqlmock connection; tests script the statements a
// handler is expected to issue.
type TestFixture struct {
	Repo         *dolt.Repo
	Mock         sqlmock.Sqlmock
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a repo façade over a mock SQL connection plus
// fresh notifier and session stores.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &TestFixture{
		Repo:         dolt.New(db, testutil.NewTestLogger(t)),
		Mock:         mock,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout. Used to bound
// SSE handlers, which otherwise block until the client goes away.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}
