package overview

import "github.com/leapstack-labs/doltctl/internal/dolt"

// BranchRow is one branch in the overview listing.
type BranchRow struct {
	dolt.BranchInfo
	Current bool
}

// OverviewData is the view model for the overview page and its live
// status fragment.
type OverviewData struct {
	Branch      string
	Database    string
	RemoteCount int
	WorkingSet  []dolt.StatusEntry
	Branches    []BranchRow
}
