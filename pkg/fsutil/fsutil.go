// Package fsutil is the filesystem capability used to prepare workspaces.
package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/types"
	"github.com/rzbill/tms/pkg/utils"
)

// FileSystem is every filesystem operation the workspace pipeline needs.
// Mutating operations return IO errors classified with types.KindIO.
type FileSystem interface {
	Exists(path string) bool
	IsDir(path string) bool
	IsFile(path string) bool

	// ListFiles returns the names of the regular files directly inside dir,
	// sorted.
	ListFiles(dir string) ([]string, error)
	// ListDirs returns the names of the directories directly inside dir,
	// sorted.
	ListDirs(dir string) ([]string, error)

	MkdirAll(path string) error
	CopyFile(src, dst string) error
	WriteFile(path string, data []byte) error

	// RemoveChildren empties dir. A missing dir is already empty.
	RemoveChildren(dir string) error
	// RemoveAll deletes path and everything below it. A missing path is not
	// an error.
	RemoveAll(path string) error
}

// OS is the FileSystem backed by the real disk.
type OS struct {
	logger log.Logger
}

var _ FileSystem = &OS{}

// NewOS creates an OS filesystem.
func NewOS(logger log.Logger) *OS {
	if logger == nil {
		logger = log.Discard()
	}
	return &OS{logger: logger}
}

func (f *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *OS) IsDir(path string) bool {
	return utils.IsDirectory(path)
}

func (f *OS) IsFile(path string) bool {
	return utils.FileExists(path)
}

func (f *OS) ListFiles(dir string) ([]string, error) {
	return f.list(dir, func(e os.DirEntry) bool { return e.Type().IsRegular() })
}

func (f *OS) ListDirs(dir string) ([]string, error) {
	return f.list(dir, os.DirEntry.IsDir)
}

func (f *OS) list(dir string, keep func(os.DirEntry) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, types.WrapIOError(err, "read directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if keep(e) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *OS) MkdirAll(path string) error {
	return types.WrapIOError(os.MkdirAll(path, 0755), "create directory %s", path)
}

func (f *OS) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return types.WrapIOError(err, "open %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return types.WrapIOError(err, "stat %s", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return types.WrapIOError(err, "create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return types.WrapIOError(err, "copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return types.WrapIOError(err, "close %s", dst)
	}

	f.logger.Debug("Copied file", log.Str("from", src), log.Str("to", dst))
	return nil
}

func (f *OS) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return types.WrapIOError(err, "write %s", path)
	}
	f.logger.Debug("Wrote file", log.Str("path", path), log.Int("bytes", len(data)))
	return nil
}

func (f *OS) RemoveChildren(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return types.WrapIOError(err, "read directory %s", dir)
	}

	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return types.WrapIOError(err, "remove %s", filepath.Join(dir, e.Name()))
		}
	}
	return nil
}

func (f *OS) RemoveAll(path string) error {
	return types.WrapIOError(os.RemoveAll(path), "remove %s", path)
}
