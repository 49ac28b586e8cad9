package dolt

import "fmt"

// opError carries the fields shared by every typed repository failure:
// the operation that ran, the object it acted on, and the driver error.
type opError struct {
	op     string
	target string
	err    error
}

func (e *opError) Error() string {
	if e.target != "" {
		return fmt.Sprintf("dolt %s %s: %v", e.op, e.target, e.err)
	}
	return fmt.Sprintf("dolt %s: %v", e.op, e.err)
}

func (e *opError) Unwrap() error { return e.err }

// Error is a repository operation failure with no more specific kind.
// Fetch, status, log, diff, branch, and ad-hoc query failures use it.
type Error struct {
	opError
}

func newError(op, target string, err error) *Error {
	return &Error{opError{op: op, target: target, err: err}}
}

// StageError reports a failed stage call. Table is the name passed to the
// engine, or "." when all changed tables were being staged.
type StageError struct {
	opError
	Table string
}

func newStageError(table string, err error) *StageError {
	return &StageError{opError: opError{op: "stage", target: table, err: err}, Table: table}
}

// CommitError reports a commit failure. The nothing-to-commit case never
// produces one; it is a recognized no-op result, not an error.
type CommitError struct {
	opError
}

func newCommitError(err error) *CommitError {
	return &CommitError{opError{op: "commit", err: err}}
}

// PushError reports a failed push. Hint carries remediation guidance when
// the driver error points at missing remote credentials.
type PushError struct {
	opError
	Remote string
	Branch string
	Hint   string
}

func newPushError(remote, branch, hint string, err error) *PushError {
	return &PushError{
		opError: opError{op: "push", target: remote + "/" + branch, err: err},
		Remote:  remote,
		Branch:  branch,
		Hint:    hint,
	}
}

func (e *PushError) Error() string {
	base := e.opError.Error()
	if e.Hint != "" {
		return base + "\nHint: " + e.Hint
	}
	return base
}

// PullError reports a failed pull.
type PullError struct {
	opError
	Remote string
	Branch string
}

func newPullError(remote, branch string, err error) *PullError {
	return &PullError{
		opError: opError{op: "pull", target: remote + "/" + branch, err: err},
		Remote:  remote,
		Branch:  branch,
	}
}

// RemoteError reports a failed remote registration.
type RemoteError struct {
	opError
	Name string
}

func newRemoteError(name string, err error) *RemoteError {
	return &RemoteError{opError: opError{op: "remote add", target: name, err: err}, Name: name}
}
