package dolt

import "strings"

// isNothingToCommit reports whether a commit failure is Dolt's way of saying
// the staged set was empty. The engine signals this through error text rather
// than a structured code, so the phrase match lives here as the single point
// to update if a future driver exposes a real error code. Engine-version
// dependent.
func isNothingToCommit(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "nothing to commit")
}

// authHint is appended to push failures that look like missing credentials.
const authHint = "set DOLT_REMOTE_USER and DOLT_REMOTE_PASSWORD to authenticate against the remote"

// needsAuthHint reports whether a push failure mentions Dolt's remote
// credential machinery, which almost always means the credentials were
// never configured.
func needsAuthHint(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "dolt_remote_password")
}

// isRetryableError reports whether an error is a transient connection
// failure worth retrying during bring-up. Operations never retry; only
// Open's initial ping does.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"bad connection",
		"invalid connection",
		"broken pipe",
		"connection reset",
		"connection refused",
		"lost connection",
		"server has gone away",
		"i/o timeout",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
