// Package dolt drives the version-control surface of a Dolt SQL engine over
// a standard MySQL-protocol connection. Branching, merging, and history
// storage live entirely inside the engine; this package issues parameterized
// calls against its stored procedures and system tables and normalizes rows
// and driver errors into typed results.
package dolt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Repo exposes the engine's stage/commit/branch/remote operations over an
// injected connection pool. Methods are safe for concurrent use to the same
// extent the pool and the engine allow concurrent sessions; no additional
// locking or ordering is imposed, and failures surface immediately without
// retries.
type Repo struct {
	db  *sql.DB
	log *slog.Logger
}

// New wraps an open connection pool. The pool stays owned by the caller.
func New(db *sql.DB, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repo{db: db, log: logger}
}

const statusQuery = `SELECT table_name, staged, status FROM dolt_status`

// statusFilteredQuery excludes tables matching an active ignore pattern.
// The anti-join runs inside the engine so pattern matching stays consistent
// with how DOLT_ADD('.') itself honors dolt_ignore.
const statusFilteredQuery = `SELECT s.table_name, s.staged, s.status FROM dolt_status s
WHERE NOT EXISTS (SELECT 1 FROM dolt_ignore i WHERE i.ignored = 1 AND s.table_name LIKE i.pattern)`

// Stage marks one table's working-set changes for the next commit. The
// sentinel "." stages every changed table.
func (r *Repo) Stage(ctx context.Context, table string) error {
	if err := r.exec(ctx, "stage", "CALL DOLT_ADD(?)", table); err != nil {
		return newStageError(table, err)
	}
	return nil
}

// Commit records the staged set as a new commit and returns its hash. When
// nothing is staged the engine reports an error; that case comes back as a
// NoOp result rather than a failure.
func (r *Repo) Commit(ctx context.Context, message, author string, allowEmpty bool) (CommitResult, error) {
	stmt := "CALL DOLT_COMMIT('-m', ?, '--author', ?)"
	if allowEmpty {
		stmt = "CALL DOLT_COMMIT('-m', ?, '--author', ?, '--allow-empty')"
	}

	var hash string
	err := r.queryRow(ctx, "commit", stmt, func(row *sql.Row) error {
		return row.Scan(&hash)
	}, message, author)
	if err != nil {
		if isNothingToCommit(err) {
			r.log.Debug("commit skipped, staged set empty")
			return CommitResult{NoOp: true}, nil
		}
		return CommitResult{}, newCommitError(err)
	}
	return CommitResult{Hash: hash}, nil
}

// StageAndCommit stages a table (or "." for everything) and commits in one
// call. A staging failure propagates without attempting the commit; the
// engine's staged set keeps whatever had already succeeded.
func (r *Repo) StageAndCommit(ctx context.Context, message, table, author string) (CommitResult, error) {
	if err := r.Stage(ctx, table); err != nil {
		return CommitResult{}, err
	}
	return r.Commit(ctx, message, author, false)
}

// Status reports the working set, one entry per changed table. With
// excludeIgnored set, tables matching an active ignore pattern are filtered
// out by the engine in a single anti-join, never client-side.
func (r *Repo) Status(ctx context.Context, excludeIgnored bool) ([]StatusEntry, error) {
	q := statusQuery
	if excludeIgnored {
		q = statusFilteredQuery
	}

	rows, err := r.query(ctx, "status", q)
	if err != nil {
		return nil, newError("status", "", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []StatusEntry
	for rows.Next() {
		var e StatusEntry
		if err := rows.Scan(&e.TableName, &e.Staged, &e.Status); err != nil {
			return nil, newError("status", "", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("status", "", err)
	}
	return entries, nil
}

// Log returns up to limit commits, newest first.
func (r *Repo) Log(ctx context.Context, limit int) ([]CommitInfo, error) {
	rows, err := r.query(ctx, "log",
		"SELECT commit_hash, committer, email, date, message FROM dolt_log LIMIT ?", limit)
	if err != nil {
		return nil, newError("log", "", err)
	}
	defer func() { _ = rows.Close() }()

	var commits []CommitInfo
	for rows.Next() {
		var c CommitInfo
		if err := rows.Scan(&c.Hash, &c.Committer, &c.Email, &c.Date, &c.Message); err != nil {
			return nil, newError("log", "", err)
		}
		commits = append(commits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("log", "", err)
	}
	return commits, nil
}

// Diff returns the row-level diff for one table between two refs. Refs are
// commit hashes, branch names, or the tokens HEAD and WORKING.
func (r *Repo) Diff(ctx context.Context, from, to, table string) (*ResultSet, error) {
	return r.queryResultSet(ctx, "diff", "SELECT * FROM dolt_diff(?, ?, ?)", from, to, table)
}

// DiffSummary returns per-table diff statistics between two refs.
func (r *Repo) DiffSummary(ctx context.Context, from, to string) (*ResultSet, error) {
	return r.queryResultSet(ctx, "diff", "SELECT * FROM dolt_diff_summary(?, ?)", from, to)
}

// Branches returns every branch with its latest-commit metadata.
func (r *Repo) Branches(ctx context.Context) ([]BranchInfo, error) {
	rows, err := r.query(ctx, "branch",
		"SELECT name, hash, latest_committer, latest_committer_email, latest_commit_date, latest_commit_message FROM dolt_branches")
	if err != nil {
		return nil, newError("branch", "", err)
	}
	defer func() { _ = rows.Close() }()

	var branches []BranchInfo
	for rows.Next() {
		var b BranchInfo
		if err := rows.Scan(&b.Name, &b.Hash, &b.LatestCommitter, &b.LatestEmail, &b.LatestCommitDate, &b.LatestMessage); err != nil {
			return nil, newError("branch", "", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("branch", "", err)
	}
	return branches, nil
}

// CurrentBranch returns the checked-out branch name. A missing row degrades
// to "main" rather than failing, matching the engine's default branch.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	var name string
	err := r.queryRow(ctx, "branch", "SELECT active_branch()", func(row *sql.Row) error {
		return row.Scan(&name)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "main", nil
	}
	if err != nil {
		return "", newError("branch", "", err)
	}
	return name, nil
}

// IgnoredTables returns the active ignore patterns.
func (r *Repo) IgnoredTables(ctx context.Context) ([]string, error) {
	rows, err := r.query(ctx, "ignore", "SELECT pattern FROM dolt_ignore WHERE ignored = 1")
	if err != nil {
		return nil, newError("ignore", "", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, newError("ignore", "", err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("ignore", "", err)
	}
	return patterns, nil
}

// Remotes returns the configured remotes.
func (r *Repo) Remotes(ctx context.Context) ([]RemoteInfo, error) {
	rows, err := r.query(ctx, "remote", "SELECT name, url, fetch_specs, params FROM dolt_remotes")
	if err != nil {
		return nil, newError("remote", "", err)
	}
	defer func() { _ = rows.Close() }()

	var remotes []RemoteInfo
	for rows.Next() {
		var rem RemoteInfo
		var specs, params sql.NullString
		if err := rows.Scan(&rem.Name, &rem.URL, &specs, &params); err != nil {
			return nil, newError("remote", "", err)
		}
		rem.FetchSpecs = specs.String
		rem.Params = params.String
		remotes = append(remotes, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("remote", "", err)
	}
	return remotes, nil
}

// AddRemote registers a remote by name and URL.
func (r *Repo) AddRemote(ctx context.Context, name, url string) error {
	if err := r.exec(ctx, "remote", "CALL DOLT_REMOTE('add', ?, ?)", name, url); err != nil {
		return newRemoteError(name, err)
	}
	return nil
}

// Push publishes a branch to a remote. When user is empty, DOLT_REMOTE_USER
// supplies the default identity. Credential-shaped failures come back with
// a remediation hint attached.
func (r *Repo) Push(ctx context.Context, remote, branch string, force bool, user string) (string, error) {
	if user == "" {
		user = os.Getenv("DOLT_REMOTE_USER")
	}

	stmt, args := pushArgs(remote, branch, force, user)
	if err := r.exec(ctx, "push", stmt, args...); err != nil {
		hint := ""
		if needsAuthHint(err) {
			hint = authHint
		}
		return "", newPushError(remote, branch, hint, err)
	}
	return fmt.Sprintf("Pushed %s to %s", branch, remote), nil
}

// Pull fetches and merges from a remote. An empty branch resolves to the
// current branch first. The engine's (fast_forward, conflicts) result row
// drives the outcome; a nonzero conflict count takes precedence over the
// fast-forward flag.
func (r *Repo) Pull(ctx context.Context, remote, branch string) (PullResult, error) {
	if branch == "" {
		cur, err := r.CurrentBranch(ctx)
		if err != nil {
			return PullResult{}, err
		}
		branch = cur
	}

	rows, err := r.query(ctx, "pull", "CALL DOLT_PULL(?, ?)", remote, branch)
	if err != nil {
		return PullResult{}, newPullError(remote, branch, err)
	}
	defer func() { _ = rows.Close() }()

	res := PullResult{Message: "Pull completed"}
	if rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return PullResult{}, newPullError(remote, branch, err)
		}

		// Older engines return (fast_forward, conflicts); newer ones append
		// a message column. Only the first two drive the outcome.
		var ff, conflicts int
		dests := make([]any, len(cols))
		for i := range dests {
			dests[i] = new(any)
		}
		if len(dests) > 0 {
			dests[0] = &ff
		}
		if len(dests) > 1 {
			dests[1] = &conflicts
		}
		if err := rows.Scan(dests...); err != nil {
			return PullResult{}, newPullError(remote, branch, err)
		}

		switch {
		case conflicts > 0:
			res = PullResult{Conflicts: conflicts, Message: fmt.Sprintf("Pulled with %d conflicts", conflicts)}
		case ff != 0:
			res = PullResult{FastForward: true, Message: "Fast-forward pull successful"}
		default:
			res = PullResult{Message: "Already up to date"}
		}
	}
	if err := rows.Err(); err != nil {
		return PullResult{}, newPullError(remote, branch, err)
	}
	return res, nil
}

// Fetch updates remote tracking refs without merging.
func (r *Repo) Fetch(ctx context.Context, remote string) (string, error) {
	if err := r.exec(ctx, "fetch", "CALL DOLT_FETCH(?)", remote); err != nil {
		return "", newError("fetch", remote, err)
	}
	return fmt.Sprintf("Fetched from %s", remote), nil
}

// Query runs an arbitrary statement against the engine. Row-returning
// statements come back as a scanned ResultSet; for everything else the
// result reports rows affected.
func (r *Repo) Query(ctx context.Context, stmt string, args ...any) (*ResultSet, error) {
	if returnsRows(stmt) {
		return r.queryResultSet(ctx, "query", stmt, args...)
	}

	r.log.Debug("dolt exec", "stmt", stmt)
	ctx, span := startSpan(ctx, "query", stmt)
	res, err := r.db.ExecContext(ctx, stmt, args...)
	endSpan(span, err)
	if err != nil {
		return nil, newError("query", "", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		n = 0
	}
	return &ResultSet{Columns: []string{"rows_affected"}, Rows: [][]any{{n}}}, nil
}

// returnsRows reports whether a statement produces a result set rather than
// an OK packet.
func returnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "select", "show", "describe", "desc", "explain", "with", "call":
		return true
	}
	return false
}

func (r *Repo) exec(ctx context.Context, op, stmt string, args ...any) error {
	r.log.Debug("dolt exec", "op", op, "stmt", stmt)
	ctx, span := startSpan(ctx, op, stmt)
	_, err := r.db.ExecContext(ctx, stmt, args...)
	endSpan(span, err)
	return err
}

func (r *Repo) query(ctx context.Context, op, stmt string, args ...any) (*sql.Rows, error) {
	r.log.Debug("dolt query", "op", op, "stmt", stmt)
	ctx, span := startSpan(ctx, op, stmt)
	//nolint:rowserrcheck // rows.Err() is checked by callers after iteration
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	endSpan(span, err)
	return rows, err
}

func (r *Repo) queryRow(ctx context.Context, op, stmt string, scan func(*sql.Row) error, args ...any) error {
	r.log.Debug("dolt query", "op", op, "stmt", stmt)
	ctx, span := startSpan(ctx, op, stmt)
	err := scan(r.db.QueryRowContext(ctx, stmt, args...))
	endSpan(span, err)
	return err
}

func (r *Repo) queryResultSet(ctx context.Context, op, stmt string, args ...any) (*ResultSet, error) {
	rows, err := r.query(ctx, op, stmt, args...)
	if err != nil {
		return nil, newError(op, "", err)
	}
	defer func() { _ = rows.Close() }()

	rs, err := scanResultSet(rows)
	if err != nil {
		return nil, newError(op, "", err)
	}
	return rs, nil
}

// scanResultSet drains rows into a ResultSet, converting []byte values to
// strings and keeping NULL as nil.
func scanResultSet(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}
