package runner

import (
	"context"

	"github.com/rzbill/tms/pkg/invocation"
	"github.com/stretchr/testify/mock"
)

// MockLauncher is a mock implementation of Launcher for testing.
type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) Launch(ctx context.Context, inv invocation.Invocation) (int, error) {
	args := m.Called(ctx, inv)
	return args.Int(0), args.Error(1)
}
