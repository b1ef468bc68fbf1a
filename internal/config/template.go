package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rzbill/tms/pkg/types"
)

const templateText = `; {{home}}/.tms/config.ini
[global]
; debug, info, warn, error
log_level = warn
java_home = $env:JAVA_HOME
java_opts = $env:JAVA_OPTS -XX:+HeapDumpOnOutOfMemoryError -XX:-OmitStackTraceInFastThrow
tomcat = $env:CATALINA_HOME
http_port = 8080
server_port = 8005
jpda_port = 5005
cache_dir = {{home}}{{sep}}.tms

[project "web"]
; every key of [global] except log_level and cache_dir may be overridden here
; java_opts are appended to the global ones
; java_home = /path/to/jdk
java_opts = -Dproject=web
; tomcat = /path/to/tomcat
http_port = 8081
; server_port = 8006
; jpda_port = 5006

[web "web"]
; name = contextPath|webDocumentPath
war1 = war1|/path/to/war1.war
admin = /admin|/path/to/admin
`

// Template returns an example configuration file for the current platform.
func Template() string {
	return strings.NewReplacer(
		"{{home}}", EnvMarker+homeEnvVar,
		"{{sep}}", string(filepath.Separator),
	).Replace(templateText)
}

// WriteTemplate writes Template to path unless a file already exists there.
// It reports whether the file was created.
func WriteTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, types.WrapIOError(err, "create %s", filepath.Dir(path))
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return false, types.WrapIOError(err, "create %s", path)
	}
	defer f.Close()

	if _, err := fmt.Fprint(f, Template()); err != nil {
		return false, types.WrapIOError(err, "write %s", path)
	}
	return true, nil
}
