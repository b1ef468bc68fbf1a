package invocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPOSIXString(t *testing.T) {
	inv := NewBuilder(ShellPOSIX).
		Env("JAVA_HOME", "/opt/jdk").
		Env("JRE_HOME", "").
		Env("JAVA_OPTS", "-Xmx512m -Dname=it's").
		Arg("jpda").
		Arg("run").
		Build("/opt/tomcat/bin/catalina.sh")

	assert.Equal(t,
		`JAVA_HOME=/opt/jdk JRE_HOME='' JAVA_OPTS='-Xmx512m -Dname=it'\''s' /opt/tomcat/bin/catalina.sh jpda run`,
		inv.String())
	assert.Equal(t, []string{"/opt/tomcat/bin/catalina.sh", "jpda", "run"}, inv.Argv())
}

func TestWindowsString(t *testing.T) {
	inv := NewBuilder(ShellWindows).
		Env("JAVA_HOME", `C:\Program Files\Java`).
		Env("TITLE", "shop").
		Arg("start").
		Build(`C:\tomcat\bin\catalina.bat`)

	assert.Equal(t,
		`set "JAVA_HOME=C:\Program Files\Java" & set "TITLE=shop" & C:\tomcat\bin\catalina.bat start`,
		inv.String())
	assert.Equal(t, []string{"cmd", "/C", `C:\tomcat\bin\catalina.bat`, "start"}, inv.Argv())
}

func TestEnvReplacesEarlierValue(t *testing.T) {
	inv := NewBuilder(ShellPOSIX).Env("A", "1").Env("B", "2").Env("A", "3").Build("x")
	assert.Equal(t, []EnvVar{{"A", "3"}, {"B", "2"}}, inv.Env)

	win := NewBuilder(ShellWindows).Env("Path", "1").Env("PATH", "2").Build("x")
	assert.Equal(t, []EnvVar{{"Path", "2"}}, win.Env)
}

func TestBuilderReuse(t *testing.T) {
	b := NewBuilder(ShellPOSIX).Env("A", "1").Arg("run")
	first := b.Build("x")
	b.Arg("more")
	assert.Equal(t, []string{"run"}, first.Args)
	assert.Equal(t, []string{"run", "more"}, b.Build("x").Args)
}

func TestEnviron(t *testing.T) {
	inv := NewBuilder(ShellPOSIX).Env("JAVA_HOME", "/jdk").Env("JRE_HOME", "").Build("x")

	env := inv.Environ([]string{"PATH=/bin", "JAVA_HOME=/old", "JRE_HOME=/jre"})
	assert.Equal(t, []string{"PATH=/bin", "JAVA_HOME=/jdk", "JRE_HOME="}, env)

	value, ok := inv.Lookup("JRE_HOME")
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestShellString(t *testing.T) {
	assert.Equal(t, "sh", ShellPOSIX.String())
	assert.Equal(t, "cmd", ShellWindows.String())
}
