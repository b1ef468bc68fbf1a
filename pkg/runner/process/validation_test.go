//go:build !windows

package process

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExecutable(t *testing.T) {
	tempDir := t.TempDir()

	execPath := filepath.Join(tempDir, "catalina.sh")
	require.NoError(t, os.WriteFile(execPath, []byte("#!/bin/sh\nexit 0\n"), 0755))

	nonExecPath := filepath.Join(tempDir, "server.xml")
	require.NoError(t, os.WriteFile(nonExecPath, []byte("<Server/>"), 0644))

	testCases := []struct {
		name     string
		command  string
		errorMsg string
	}{
		{name: "command in PATH", command: "sh"},
		{name: "absolute path", command: execPath},
		{name: "empty command", command: "", errorMsg: "command cannot be empty"},
		{name: "missing file", command: filepath.Join(tempDir, "missing"), errorMsg: "file does not exist"},
		{name: "not executable", command: nonExecPath, errorMsg: "file is not executable"},
		{name: "directory", command: tempDir, errorMsg: "path is a directory"},
		{name: "unknown command", command: "tms-no-such-command", errorMsg: "not found in PATH"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateExecutable(tc.command)
			if tc.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorMsg)
		})
	}
}
