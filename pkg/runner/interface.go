// Package runner defines how a prepared server invocation is started.
package runner

import (
	"context"

	"github.com/rzbill/tms/pkg/invocation"
)

// Launcher starts an invocation and waits for it to finish.
type Launcher interface {
	// Launch runs inv in the foreground and returns its exit status. The
	// error is non-nil only when the process could not be started.
	Launch(ctx context.Context, inv invocation.Invocation) (int, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, inv invocation.Invocation) (int, error)

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context, inv invocation.Invocation) (int, error) {
	return f(ctx, inv)
}
