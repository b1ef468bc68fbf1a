package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rzbill/tms/pkg/types"
	"github.com/rzbill/tms/pkg/workspace"
	"github.com/stretchr/testify/require"
)

// launchScript stands in for catalina.sh. It records what it was started
// with in the workspace and exits with $TMS_IT_EXIT.
const launchScript = `#!/bin/sh
{
  echo "CATALINA_BASE=$CATALINA_BASE"
  echo "CATALINA_HOME=$CATALINA_HOME"
  echo "JAVA_OPTS=$JAVA_OPTS"
  echo "JRE_HOME=$JRE_HOME"
  echo "JPDA_ADDRESS=$JPDA_ADDRESS"
  echo "ARGS=$*"
} > "$CATALINA_BASE/launch.out"
if [ -n "$TMS_IT_SLEEP" ]; then
  exec sleep "$TMS_IT_SLEEP"
fi
exit ${TMS_IT_EXIT:-0}
`

// Installation is a throwaway JDK, server installation and cache
// directory laid out the way a real one is.
type Installation struct {
	Root       string
	JavaHome   string
	ServerHome string
	CacheBase  string
	Artifacts  string
}

// NewInstallation creates an Installation under a test temp directory.
func NewInstallation(t *testing.T) *Installation {
	t.Helper()
	root := t.TempDir()
	inst := &Installation{
		Root:       root,
		JavaHome:   filepath.Join(root, "jdk"),
		ServerHome: filepath.Join(root, "tomcat"),
		CacheBase:  filepath.Join(root, "cache"),
		Artifacts:  filepath.Join(root, "wars"),
	}

	for _, dir := range []string{
		filepath.Join(inst.JavaHome, workspace.BinDirName),
		filepath.Join(inst.ServerHome, workspace.BinDirName),
		filepath.Join(inst.ServerHome, workspace.ConfDirName),
		inst.CacheBase,
		inst.Artifacts,
	} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	inst.WriteFile(t, filepath.Join(inst.JavaHome, workspace.BinDirName, workspace.JavaExecutable), "")
	inst.WriteFile(t, filepath.Join(inst.ServerHome, workspace.BinDirName, workspace.LauncherScript), launchScript)
	inst.WriteFile(t, filepath.Join(inst.ServerHome, workspace.ConfDirName, "web.xml"), "<web-app/>")
	inst.WriteFile(t, filepath.Join(inst.ServerHome, workspace.ConfDirName, "logging.properties"), "handlers =\n")
	return inst
}

// WriteFile writes an executable file, creating its directory.
func (inst *Installation) WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
}

// Artifact creates an exploded web document named name and returns its path.
func (inst *Installation) Artifact(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(inst.Artifacts, name)
	inst.WriteFile(t, filepath.Join(path, "index.html"), "<html/>")
	return path
}

// Project returns a usable project running against the installation.
func (inst *Installation) Project(name string, docs ...types.WebDocument) types.Project {
	return types.Project{
		Name:       name,
		Present:    true,
		JavaHome:   inst.JavaHome,
		JavaOpts:   "-Xmx256m",
		ServerHome: inst.ServerHome,
		HTTPPort:   18080,
		ServerPort: 18005,
		JPDAPort:   15005,
		Documents:  docs,
	}
}

// LaunchRecord reads what the launch script recorded in ws.
func (inst *Installation) LaunchRecord(t *testing.T, ws workspace.Workspace) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ws.Root, "launch.out"))
	require.NoError(t, err)
	return string(data)
}

// RequireEnvVar ensures that an environment variable is set, skipping the test if not present
func RequireEnvVar(t *testing.T, name string) string {
	value := os.Getenv(name)
	if value == "" {
		t.Skipf("Required environment variable %s is not set", name)
	}
	return value
}
