package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSListAndCopy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web.xml"), []byte("<web-app/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "context.xml"), []byte("<Context/>"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Catalina"), 0755))

	fs := NewOS(nil)
	names, err := fs.ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"context.xml", "web.xml"}, names, "directories are not listed")

	dirs, err := fs.ListDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Catalina"}, dirs)

	dst := filepath.Join(t.TempDir(), "context.xml")
	require.NoError(t, fs.CopyFile(filepath.Join(dir, "context.xml"), dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<Context/>", string(data))

	assert.True(t, fs.IsFile(dst))
	assert.False(t, fs.IsDir(dst))
	assert.True(t, fs.IsDir(dir))
	assert.True(t, fs.Exists(dir))

	_, err = fs.ListFiles(filepath.Join(dir, "missing"))
	assert.True(t, types.IsKind(err, types.KindIO))
}

func TestOSRemoveChildren(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shop", "WEB-INF"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ROOT.xml"), nil, 0644))

	fs := NewOS(nil)
	require.NoError(t, fs.RemoveChildren(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, fs.IsDir(dir), "the directory itself is kept")

	assert.NoError(t, fs.RemoveChildren(filepath.Join(dir, "missing")))
	assert.NoError(t, fs.RemoveAll(filepath.Join(dir, "missing")))
}

func TestOSWriteFile(t *testing.T) {
	fs := NewOS(nil)
	dir := filepath.Join(t.TempDir(), "conf", "Catalina", "localhost")
	require.NoError(t, fs.MkdirAll(dir))

	path := filepath.Join(dir, "ROOT.xml")
	require.NoError(t, fs.WriteFile(path, []byte("<Context/>")))
	assert.True(t, fs.IsFile(path))

	err := fs.WriteFile(filepath.Join(dir, "missing", "x.xml"), nil)
	assert.True(t, types.IsKind(err, types.KindIO))
}

func TestDryRunSkipsMutations(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "web.xml")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	logger := log.NewTestLogger()
	fs := NewDryRun(logger)

	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "cache")))
	require.NoError(t, fs.CopyFile(src, filepath.Join(dir, "copy.xml")))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "server.xml"), []byte("<Server/>")))
	require.NoError(t, fs.RemoveChildren(dir))
	require.NoError(t, fs.RemoveAll(dir))

	assert.True(t, fs.IsFile(src), "nothing was removed")
	assert.False(t, fs.Exists(filepath.Join(dir, "cache")))
	assert.False(t, fs.Exists(filepath.Join(dir, "server.xml")))
	assert.Len(t, fs.Operations(), 5)
	assert.True(t, logger.AssertLoggedWithField(log.InfoLevel, "Dry run", "path", filepath.Join(dir, "server.xml")))

	names, err := fs.ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"web.xml"}, names, "reads use the real filesystem")
}
