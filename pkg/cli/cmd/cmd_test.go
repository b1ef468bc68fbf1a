package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rzbill/tms/internal/config"
	"github.com/rzbill/tms/pkg/runner"
	"github.com/rzbill/tms/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type cliEnv struct {
	home     string
	env      map[string]string
	launcher runner.Launcher
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// newCLIEnv lays out a home directory with a JDK, a Tomcat installation,
// two artifacts and a configuration file describing the shop project.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	home := t.TempDir()
	e := &cliEnv{
		home: home,
		env: map[string]string{
			"JAVA_HOME":     filepath.Join(home, "jdk"),
			"CATALINA_HOME": filepath.Join(home, "tomcat"),
		},
		launcher: runner.NewFakeLauncher(0),
	}

	for _, dir := range []string{
		filepath.Join(home, "jdk", workspace.BinDirName),
		filepath.Join(home, "tomcat", workspace.BinDirName),
		filepath.Join(home, "tomcat", workspace.ConfDirName),
		filepath.Join(home, "wars"),
		filepath.Join(home, "cache"),
		filepath.Join(home, config.DirName),
	} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	files := map[string]string{
		filepath.Join(home, "jdk", workspace.BinDirName, workspace.JavaExecutable):   "",
		filepath.Join(home, "tomcat", workspace.BinDirName, workspace.LauncherScript): "#!/bin/sh\n",
		filepath.Join(home, "tomcat", workspace.ConfDirName, "web.xml"):               "<web-app/>",
		filepath.Join(home, "wars", "shop.war"):                                       "war",
	}
	for path, content := range files {
		require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	}

	e.writeConfig(t, fmt.Sprintf(`[global]
java_home = $env:JAVA_HOME
tomcat = $env:CATALINA_HOME
java_opts = -Xmx512m
cache_dir = %s

[project "shop"]
http_port = 9090

[web "shop"]
shop = /|%s
admin = shop/admin|%s

[project "broken"]

[web "broken"]
war1 = %s
`,
		filepath.Join(home, "cache"),
		filepath.Join(home, "wars", "shop.war"),
		filepath.Join(home, "wars", "admin.war"),
		filepath.Join(home, "wars", "shop.war")))
	return e
}

func (e *cliEnv) configPath() string {
	return config.DefaultPath(e.home)
}

func (e *cliEnv) writeConfig(t *testing.T, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.configPath(), []byte(text), 0644))
}

func (e *cliEnv) run(args ...string) cliResult {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	a := newApp(stdout, stderr)
	a.home = e.home
	a.stdin = strings.NewReader("")
	a.lookupEnv = func(key string) (string, bool) {
		v, ok := e.env[key]
		return v, ok
	}
	a.newLauncher = func(*app) runner.Launcher { return e.launcher }

	code := a.execute(append([]string{"--no-color"}, args...))
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVersionCommand(t *testing.T) {
	e := newCLIEnv(t)

	res := e.run("version", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, "tms", info["name"])
}

func TestConfigCommands(t *testing.T) {
	e := newCLIEnv(t)

	t.Run("path", func(t *testing.T) {
		res := e.run("config", "path")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, e.configPath()+"\n", res.stdout)
	})

	t.Run("path from flag", func(t *testing.T) {
		res := e.run("--config", "~/other.ini", "config", "path")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, filepath.Join(e.home, "other.ini")+"\n", res.stdout)
	})

	t.Run("template", func(t *testing.T) {
		res := e.run("config", "template")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, config.Template(), res.stdout)
	})

	t.Run("init keeps existing file", func(t *testing.T) {
		before, err := os.ReadFile(e.configPath())
		require.NoError(t, err)

		res := e.run("config", "init")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "already exists")

		after, err := os.ReadFile(e.configPath())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("init creates file", func(t *testing.T) {
		path := filepath.Join(e.home, "fresh", "config.ini")
		res := e.run("--config", path, "config", "init")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Created configuration")
		assert.FileExists(t, path)
	})
}

func TestListProjects(t *testing.T) {
	e := newCLIEnv(t)

	res := e.run("list", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)

	var projects []projectSummary
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &projects))
	require.Len(t, projects, 2)

	assert.Equal(t, "shop", projects[0].Name)
	assert.Equal(t, statusReady, projects[0].Status)
	assert.Equal(t, 2, projects[0].Documents)
	assert.Equal(t, 9090, projects[0].HTTPPort)
	assert.Equal(t, 8005, projects[0].ServerPort)
	assert.False(t, projects[0].Cached)

	assert.Equal(t, "broken", projects[1].Name)
	assert.Equal(t, statusInvalid, projects[1].Status)
	assert.NotEmpty(t, projects[1].Reason)

	table := e.run("list")
	require.Equal(t, 0, table.code, table.stderr)
	assert.Contains(t, table.stdout, "NAME")
	assert.Contains(t, table.stdout, "shop")
	assert.Contains(t, table.stdout, statusNotCached)
}

func TestListDocuments(t *testing.T) {
	e := newCLIEnv(t)

	res := e.run("list", "shop", "-o", "yaml")
	require.Equal(t, 0, res.code, res.stderr)

	var docs []documentStatus
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, documentStatus{Name: "shop", Context: "/", Path: filepath.Join(e.home, "wars", "shop.war"), Artifact: statusPresent}, docs[0])
	assert.Equal(t, "/shop/admin", docs[1].Context)
	assert.Equal(t, statusMissing, docs[1].Artifact)

	missing := e.run("list", "nope")
	assert.Equal(t, 1, missing.code)
	assert.Contains(t, missing.stderr, `project "nope" is not configured`)
}

func TestShowProject(t *testing.T) {
	e := newCLIEnv(t)

	res := e.run("show", "shop", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)

	var p map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &p))
	assert.Equal(t, "shop", p["name"])
	assert.Equal(t, float64(9090), p["http_port"])
	assert.Equal(t, "-Xmx512m", p["java_opts"])
	assert.Equal(t, filepath.Join(e.home, "tomcat"), p["tomcat"])

	broken := e.run("show", "broken")
	assert.Equal(t, 1, broken.code)
	assert.Contains(t, broken.stderr, "broken")
}

func TestRunProject(t *testing.T) {
	e := newCLIEnv(t)
	launcher := runner.NewFakeLauncher(0)
	e.launcher = launcher

	res := e.run("run", "shop", "-w", "shop", "--http-port", "9191", "-d")
	require.Equal(t, 0, res.code, res.stderr)

	inv, ok := launcher.Last()
	require.True(t, ok)
	root := workspace.NewWorkspace(filepath.Join(e.home, "cache"), "shop").Root
	base, _ := inv.Lookup(workspace.EnvCatalinaBase)
	assert.Equal(t, root, base)
	assert.Equal(t, []string{"jpda", "run"}, inv.Args)

	server, err := os.ReadFile(filepath.Join(root, workspace.ConfDirName, "server.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(server), `port="9191"`)
	assert.FileExists(t, filepath.Join(root, workspace.ConfDirName, "web.xml"))

	listed := e.run("list", "-o", "json")
	var projects []projectSummary
	require.NoError(t, json.Unmarshal([]byte(listed.stdout), &projects))
	assert.True(t, projects[0].Cached)
}

func TestRunPropagatesExitStatus(t *testing.T) {
	e := newCLIEnv(t)
	e.launcher = runner.NewFakeLauncher(3)

	res := e.run("run", "shop", "-w", "shop")
	assert.Equal(t, 3, res.code)
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown project", []string{"run", "nope"}, `project "nope" is not configured`},
		{"malformed project", []string{"run", "broken"}, "expected exactly one"},
		{"missing artifact", []string{"run", "shop"}, "admin.war does not exist"},
		{"unknown document", []string{"run", "shop", "-w", "nope"}, `web document "nope" not found`},
		{"web with all", []string{"run", "shop", "-w", "shop", "--all"}, "none of the others can be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newCLIEnv(t)
			launcher := runner.NewFakeLauncher(0)
			e.launcher = launcher

			res := e.run(tt.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.want)
			assert.Empty(t, launcher.Invocations())
		})
	}
}

func TestRunDryRun(t *testing.T) {
	e := newCLIEnv(t)
	launcher := runner.NewFakeLauncher(0)
	e.launcher = launcher

	res := e.run("run", "shop", "-w", "shop", "--dry-run")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "Dry run of shop")
	assert.Contains(t, res.stdout, "catalina")
	assert.Empty(t, launcher.Invocations())
	assert.NoDirExists(t, workspace.CacheRoot(filepath.Join(e.home, "cache")))
}

func TestCleanCommand(t *testing.T) {
	e := newCLIEnv(t)
	cacheRoot := workspace.CacheRoot(filepath.Join(e.home, "cache"))

	res := e.run("run", "shop", "-w", "shop")
	require.Equal(t, 0, res.code, res.stderr)
	require.DirExists(t, filepath.Join(cacheRoot, "shop"))

	res = e.run("clean", "shop")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NoDirExists(t, filepath.Join(cacheRoot, "shop"))

	res = e.run("clean", "--all")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NoDirExists(t, cacheRoot)

	res = e.run("clean", "--all")
	assert.Equal(t, 0, res.code, res.stderr)

	res = e.run("clean")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "either a project or --all")

	res = e.run("clean", "../etc")
	assert.Equal(t, 1, res.code)
}

func TestInvalidConfiguration(t *testing.T) {
	e := newCLIEnv(t)
	e.writeConfig(t, "[global]\nlog_level = loud\nhttp_port = web\n")

	res := e.run("list")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "CONFIGURATION INVALID")
	assert.Contains(t, res.stderr, "loud")
	assert.Contains(t, res.stderr, "http_port")
}

func TestMissingConfiguration(t *testing.T) {
	e := newCLIEnv(t)
	require.NoError(t, os.Remove(e.configPath()))

	res := e.run("list")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "tms config init")
}

func TestExitError(t *testing.T) {
	var err error = fmt.Errorf("launch: %w", &exitError{code: 4})

	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 4, exit.code)
	assert.Equal(t, "server exited with status 4", exit.Error())
}
