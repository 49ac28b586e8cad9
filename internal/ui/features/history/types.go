package history

import "github.com/leapstack-labs/doltctl/internal/dolt"

// HistoryData is the view model for the commit listing.
type HistoryData struct {
	Commits []dolt.CommitInfo
}
