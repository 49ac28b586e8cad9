package dolt

import "strings"

// pushArgs builds the DOLT_PUSH call for the given options. Flags go in a
// fixed order, '--user' then '--force', followed by the remote and branch
// positionals. Statement text and parameter list are produced together so
// the placeholder count cannot drift from the arguments.
func pushArgs(remote, branch string, force bool, user string) (string, []any) {
	parts := make([]string, 0, 5)
	args := make([]any, 0, 3)
	if user != "" {
		parts = append(parts, "'--user'", "?")
		args = append(args, user)
	}
	if force {
		parts = append(parts, "'--force'")
	}
	parts = append(parts, "?", "?")
	args = append(args, remote, branch)
	return "CALL DOLT_PUSH(" + strings.Join(parts, ", ") + ")", args
}
