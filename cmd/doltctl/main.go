// Package main provides the doltctl command line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/doltctl/internal/cli"
)

func main() {
	// Execute prints the error itself; main only sets the exit code.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
