package dolt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"generic with target", newError("fetch", "origin", cause), "dolt fetch origin: boom"},
		{"generic without target", newError("status", "", cause), "dolt status: boom"},
		{"stage", newStageError("users", cause), "dolt stage users: boom"},
		{"commit", newCommitError(cause), "dolt commit: boom"},
		{"pull", newPullError("origin", "main", cause), "dolt pull origin/main: boom"},
		{"remote", newRemoteError("backup", cause), "dolt remote add backup: boom"},
		{"push without hint", newPushError("origin", "main", "", cause), "dolt push origin/main: boom"},
		{"push with hint", newPushError("origin", "main", authHint, cause), "dolt push origin/main: boom\nHint: " + authHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")

	for _, err := range []error{
		newError("log", "", cause),
		newStageError(".", cause),
		newCommitError(cause),
		newPushError("origin", "main", "", cause),
		newPullError("origin", "main", cause),
		newRemoteError("origin", cause),
	} {
		assert.ErrorIs(t, err, cause)
	}
}
