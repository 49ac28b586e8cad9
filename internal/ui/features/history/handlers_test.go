package history

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/doltctl/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(fixture.Repo, "orders", false)

	return handlers, fixture
}

func TestHistoryPage(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	fixture.Mock.ExpectQuery(regexp.QuoteMeta("FROM dolt_log LIMIT ?")).
		WithArgs(historyLimit).
		WillReturnRows(sqlmock.NewRows([]string{"commit_hash", "committer", "email", "date", "message"}).
			AddRow("deadbeefcafe0123", "ana", "ana@example.com", time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), "seed tables\n\nlong body").
			AddRow("cafe0123deadbeef", "bo", "bo@example.com", time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC), "initial commit"))

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()

	h.HistoryPage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>History - doltctl</title>")
	assert.Contains(t, body, "deadbeef")
	assert.Contains(t, body, "seed tables")
	assert.NotContains(t, body, "long body", "only the first message line should be shown")
	assert.Contains(t, body, "2025-06-01 10:30")

	assert.NoError(t, fixture.Mock.ExpectationsWereMet())
}

func TestHistoryPage_Empty(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	fixture.Mock.ExpectQuery(regexp.QuoteMeta("FROM dolt_log LIMIT ?")).
		WithArgs(historyLimit).
		WillReturnRows(sqlmock.NewRows([]string{"commit_hash", "committer", "email", "date", "message"}))

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()

	h.HistoryPage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No commits yet.")
}

func TestHistoryPage_QueryError(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	fixture.Mock.ExpectQuery(regexp.QuoteMeta("FROM dolt_log LIMIT ?")).
		WithArgs(historyLimit).
		WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()

	h.HistoryPage(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
