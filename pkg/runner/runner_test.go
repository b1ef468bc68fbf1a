package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/rzbill/tms/pkg/invocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	_ Launcher = &FakeLauncher{}
	_ Launcher = &MockLauncher{}
	_ Launcher = LauncherFunc(nil)
)

func TestFakeLauncher(t *testing.T) {
	fake := NewFakeLauncher(3)
	inv := invocation.NewBuilder(invocation.ShellPOSIX).Arg("run").Build("catalina.sh")

	_, ok := fake.Last()
	assert.False(t, ok)

	code, err := fake.Launch(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	last, ok := fake.Last()
	require.True(t, ok)
	assert.Equal(t, inv, last)
	assert.Len(t, fake.Invocations(), 1)

	fake.Err = errors.New("boom")
	_, err = fake.Launch(context.Background(), inv)
	assert.EqualError(t, err, "boom")
}

func TestMockLauncher(t *testing.T) {
	m := &MockLauncher{}
	m.On("Launch", mock.Anything, mock.AnythingOfType("invocation.Invocation")).Return(0, nil)

	code, err := m.Launch(context.Background(), invocation.Invocation{Executable: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	m.AssertExpectations(t)
}

func TestLauncherFunc(t *testing.T) {
	var got string
	f := LauncherFunc(func(ctx context.Context, inv invocation.Invocation) (int, error) {
		got = inv.Executable
		return 1, nil
	})

	code, err := f.Launch(context.Background(), invocation.Invocation{Executable: "catalina.sh"})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, "catalina.sh", got)
}
