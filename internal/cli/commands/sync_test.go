package commands

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/doltctl/internal/cli/config"
	"github.com/leapstack-labs/doltctl/internal/cli/testutil"
	logtest "github.com/leapstack-labs/doltctl/internal/testutil"
)

// syncFixture wires a mocked repo and captured renderer into the context
// executeSync takes.
func syncFixture(t *testing.T, tr *testutil.TestRenderer) (*CommandContext, sqlmock.Sqlmock) {
	t.Helper()
	repo, mock := testutil.SetupTestRepo(t)
	return &CommandContext{
		Cfg: &config.Config{
			Remote: "origin",
			Author: "doltctl <doltctl@localhost>",
		},
		Logger:   logtest.NewTestLogger(t),
		Repo:     repo,
		Renderer: tr.Renderer,
	}, mock
}

func TestExecuteSync_NothingToCommitSkipsPush(t *testing.T) {
	tr := testutil.NewTestRendererText()
	cmdCtx, mock := syncFixture(t, tr)

	mock.ExpectExec(regexp.QuoteMeta("CALL DOLT_ADD(?)")).
		WithArgs(".").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("CALL DOLT_COMMIT('-m', ?, '--author', ?)")).
		WithArgs("checkpoint", "doltctl <doltctl@localhost>").
		WillReturnError(errors.New("Error 1105: nothing to commit"))

	err := executeSync(context.Background(), cmdCtx, &SyncOptions{}, "checkpoint")
	require.NoError(t, err)

	assert.Contains(t, tr.Output(), "Nothing to commit.")
	// An attempted DOLT_PUSH would hit the mock as an unexpected call and
	// surface as an error above.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSync_CommitThenPush(t *testing.T) {
	t.Setenv("DOLT_REMOTE_USER", "")

	tr := testutil.NewTestRendererMarkdown()
	cmdCtx, mock := syncFixture(t, tr)

	mock.ExpectExec(regexp.QuoteMeta("CALL DOLT_ADD(?)")).
		WithArgs(".").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("CALL DOLT_COMMIT('-m', ?, '--author', ?)")).
		WithArgs("Load March inventory", "doltctl <doltctl@localhost>").
		WillReturnRows(sqlmock.NewRows([]string{"hash"}).AddRow("abc123def456"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT active_branch()")).
		WillReturnRows(sqlmock.NewRows([]string{"active_branch()"}).AddRow("main"))
	mock.ExpectExec(regexp.QuoteMeta("CALL DOLT_PUSH(?, ?)")).
		WithArgs("origin", "main").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := executeSync(context.Background(), cmdCtx, &SyncOptions{}, "Load March inventory")
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "- **Commit**: abc123def456")
	assert.Contains(t, out, "- **Pushed**: main -> origin")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSync_NoPushFlag(t *testing.T) {
	tr := testutil.NewTestRendererText()
	cmdCtx, mock := syncFixture(t, tr)

	mock.ExpectExec(regexp.QuoteMeta("CALL DOLT_ADD(?)")).
		WithArgs(".").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("CALL DOLT_COMMIT('-m', ?, '--author', ?)")).
		WithArgs("Load", "doltctl <doltctl@localhost>").
		WillReturnRows(sqlmock.NewRows([]string{"hash"}).AddRow("abc123def456"))

	err := executeSync(context.Background(), cmdCtx, &SyncOptions{NoPush: true}, "Load")
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "Committed abc123de")
	assert.Contains(t, out, "Push skipped (--no-push)")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSync_BadTableSkippedWithWarning(t *testing.T) {
	tr := testutil.NewTestRendererText()
	cmdCtx, mock := syncFixture(t, tr)

	mock.ExpectExec(regexp.QuoteMeta("CALL DOLT_ADD(?)")).
		WithArgs("missing").
		WillReturnError(errors.New("table not found: missing"))
	mock.ExpectExec(regexp.QuoteMeta("CALL DOLT_ADD(?)")).
		WithArgs("users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("CALL DOLT_COMMIT('-m', ?, '--author', ?)")).
		WithArgs("Partial", "doltctl <doltctl@localhost>").
		WillReturnRows(sqlmock.NewRows([]string{"hash"}).AddRow("abc123def456"))

	opts := &SyncOptions{Tables: []string{"missing", "users"}, NoPush: true}
	err := executeSync(context.Background(), cmdCtx, opts, "Partial")
	require.NoError(t, err)

	assert.Contains(t, tr.ErrorOutput(), "Skipping missing")
	assert.Contains(t, tr.Output(), "Committed abc123de")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncMarkdown_Pushed(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	err := syncMarkdown(tr.Renderer, "abcdef1234567890", "Load March inventory\n\nDetails.", "origin", "main", "Pushed main to origin")
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "# Sync")
	assert.Contains(t, out, "- **Commit**: abcdef1234567890")
	assert.Contains(t, out, "- **Message**: Load March inventory")
	assert.NotContains(t, out, "Details.")
	assert.Contains(t, out, "- **Pushed**: main -> origin")

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestSyncMarkdown_NoPush(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	err := syncMarkdown(tr.Renderer, "abcdef1234567890", "Nightly checkpoint", "", "", "")
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "- **Pushed**: no")
}
