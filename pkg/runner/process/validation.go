package process

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ValidateExecutable checks that command exists and can be executed. A bare
// name is looked up in PATH.
func ValidateExecutable(command string) error {
	return validateExecutablePath(command)
}

// validateExecutablePath checks if the given command exists and is executable
func validateExecutablePath(command string) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if filepath.IsAbs(command) {
		return checkFileExecutable(command)
	}

	// Relative paths are resolved against the current directory
	if strings.ContainsRune(command, os.PathSeparator) || strings.ContainsRune(command, '/') {
		absPath, err := filepath.Abs(command)
		if err != nil {
			return fmt.Errorf("failed to convert to absolute path: %w", err)
		}
		return checkFileExecutable(absPath)
	}

	if _, err := exec.LookPath(command); err != nil {
		return fmt.Errorf("command '%s' not found in PATH: %w", command, err)
	}

	return nil
}

// checkFileExecutable checks if a file exists and is executable
func checkFileExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("failed to access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not an executable file: %s", path)
	}

	// Windows has no execute bit; the extension decides.
	if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
		return fmt.Errorf("file is not executable: %s", path)
	}

	return nil
}
