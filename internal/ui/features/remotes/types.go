package remotes

import "github.com/leapstack-labs/doltctl/internal/dolt"

// RemotesData is the view model for the remotes page.
type RemotesData struct {
	Remotes []dolt.RemoteInfo
}
