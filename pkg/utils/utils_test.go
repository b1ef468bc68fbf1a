package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPickFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{
			name:     "first non-empty value",
			values:   []string{"first", "second", "third"},
			expected: "first",
		},
		{
			name:     "empty first value",
			values:   []string{"", "second", "third"},
			expected: "second",
		},
		{
			name:     "all empty values",
			values:   []string{"", "", ""},
			expected: "",
		},
		{
			name:     "single non-empty value",
			values:   []string{"only"},
			expected: "only",
		},
		{
			name:     "no values",
			values:   []string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PickFirstNonEmpty(tt.values...)
			if result != tt.expected {
				t.Errorf("PickFirstNonEmpty() = %v, want %v", result, tt.expected)
			}
		})
	}
}
func TestExpandHome(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"~", "/home/dev"},
		{"~/.tms/config.ini", filepath.Join("/home/dev", ".tms/config.ini")},
		{"/etc/tms/config.ini", "/etc/tms/config.ini"},
		{"relative/~/x", "relative/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if result := ExpandHome(tt.path, "/home/dev"); result != tt.expected {
				t.Errorf("ExpandHome() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFileChecks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.ini")
	if err := os.WriteFile(file, []byte("[global]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if !IsDirectory(dir) || IsDirectory(file) {
		t.Error("IsDirectory mismatch")
	}
	if !FileExists(file) || FileExists(dir) || FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists mismatch")
	}
}
