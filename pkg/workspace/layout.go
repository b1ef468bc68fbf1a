package workspace

import (
	"path/filepath"
	"strings"

	"github.com/rzbill/tms/pkg/types"
)

// Directory names inside the cache base and a project workspace.
const (
	CacheDirName   = "tms_cache"
	BinDirName     = "bin"
	ConfDirName    = "conf"
	WebappsDirName = "webapps"
	LogsDirName    = "logs"
	TempDirName    = "temp"
	EngineDirName  = "Catalina"
	HostDirName    = "localhost"
)

// Workspace is the per-project directory tree the server runs from. It is
// used as the server's instance base.
type Workspace struct {
	Root       string `json:"root" yaml:"root"`
	Conf       string `json:"conf" yaml:"conf"`
	ContextDir string `json:"context_dir" yaml:"context_dir"`
	Webapps    string `json:"webapps" yaml:"webapps"`
	Logs       string `json:"logs" yaml:"logs"`
	Temp       string `json:"temp" yaml:"temp"`
}

// CacheRoot returns the directory holding every project workspace.
func CacheRoot(cacheBase string) string {
	return filepath.Join(cacheBase, CacheDirName)
}

// NewWorkspace returns the layout of project's workspace under cacheBase.
func NewWorkspace(cacheBase, project string) Workspace {
	root := filepath.Join(CacheRoot(cacheBase), project)
	conf := filepath.Join(root, ConfDirName)
	return Workspace{
		Root:       root,
		Conf:       conf,
		ContextDir: filepath.Join(conf, EngineDirName, HostDirName),
		Webapps:    filepath.Join(root, WebappsDirName),
		Logs:       filepath.Join(root, LogsDirName),
		Temp:       filepath.Join(root, TempDirName),
	}
}

// ValidateProjectName rejects names that would place a workspace outside
// the cache root.
func ValidateProjectName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return types.NewConfigValueError("invalid project name %q", name)
	}
	return nil
}
