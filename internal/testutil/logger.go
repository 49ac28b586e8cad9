// Package testutil routes structured log output through the testing
// framework so records show up interleaved with t.Log output and only on
// failure or under -v.
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug-level slog.Logger whose records go to
// t.Log.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(&testHandler{t: t})
}

// testHandler implements slog.Handler on top of testing.TB. Groups are not
// supported; attrs accumulated via With calls are prepended to each record.
type testHandler struct {
	t     testing.TB
	attrs []slog.Attr
}

func (h *testHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testHandler) Handle(_ context.Context, rec slog.Record) error {
	h.t.Helper()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", rec.Level, rec.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	h.t.Log(b.String())
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *testHandler) WithGroup(string) slog.Handler { return h }
