package runner

import (
	"context"
	"sync"

	"github.com/rzbill/tms/pkg/invocation"
)

// FakeLauncher records invocations instead of starting them.
type FakeLauncher struct {
	ExitCode int
	Err      error

	mu          sync.Mutex
	invocations []invocation.Invocation
}

// NewFakeLauncher creates a FakeLauncher that reports exitCode.
func NewFakeLauncher(exitCode int) *FakeLauncher {
	return &FakeLauncher{ExitCode: exitCode}
}

// Launch records inv.
func (f *FakeLauncher) Launch(ctx context.Context, inv invocation.Invocation) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.invocations = append(f.invocations, inv)
	if f.Err != nil {
		return -1, f.Err
	}
	return f.ExitCode, nil
}

// Invocations returns everything launched so far.
func (f *FakeLauncher) Invocations() []invocation.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]invocation.Invocation, len(f.invocations))
	copy(out, f.invocations)
	return out
}

// Last returns the most recent invocation.
func (f *FakeLauncher) Last() (invocation.Invocation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.invocations) == 0 {
		return invocation.Invocation{}, false
	}
	return f.invocations[len(f.invocations)-1], true
}
