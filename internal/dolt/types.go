package dolt

import "time"

// StatusEntry is one row of the engine's working-set status: a table with
// uncommitted changes and whether those changes are staged.
type StatusEntry struct {
	TableName string
	Staged    bool
	Status    string
}

// CommitInfo is one commit from the history view, newest first when read
// through Log.
type CommitInfo struct {
	Hash      string
	Committer string
	Email     string
	Date      time.Time
	Message   string
}

// ShortHash returns the abbreviated form of the commit hash used in listings.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// BranchInfo is one branch pointer with the metadata of its latest commit.
type BranchInfo struct {
	Name             string
	Hash             string
	LatestCommitter  string
	LatestEmail      string
	LatestCommitDate time.Time
	LatestMessage    string
}

// RemoteInfo is one configured remote. FetchSpecs and Params are carried as
// the engine's raw JSON text.
type RemoteInfo struct {
	Name       string
	URL        string
	FetchSpecs string
	Params     string
}

// CommitResult is the outcome of a commit: either a new hash, or NoOp when
// nothing was staged.
type CommitResult struct {
	Hash string
	NoOp bool
}

// PullResult is the interpreted outcome of a pull. Conflicts takes
// precedence over FastForward when both are reported.
type PullResult struct {
	FastForward bool
	Conflicts   int
	Message     string
}

// ResultSet holds a fully scanned query result. Byte slices are converted
// to strings; NULL is carried as nil so each output format can render it
// natively.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}
