// Package config resolves the tms configuration file into global settings
// and per-project views.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rzbill/tms/pkg/ini"
	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/types"
)

// Layout of the configuration file.
const (
	GlobalGroup  = "global"
	ProjectGroup = "project"
	WebGroup     = "web"

	KeyLogLevel   = "log_level"
	KeyJavaHome   = "java_home"
	KeyJavaOpts   = "java_opts"
	KeyServerHome = "tomcat"
	KeyHTTPPort   = "http_port"
	KeyServerPort = "server_port"
	KeyJPDAPort   = "jpda_port"
	KeyCacheDir   = "cache_dir"

	// WebDelimiter separates the context path from the artifact path in a
	// web entry.
	WebDelimiter = "|"
)

const (
	// DirName is the per-user directory holding the configuration file and,
	// by default, the workspace cache.
	DirName = ".tms"
	// FileName is the configuration file inside DirName.
	FileName = "config.ini"
)

// Option configures a Configuration.
type Option func(*Configuration)

// WithLogger sets the logger used for parse warnings and resolution problems.
func WithLogger(logger log.Logger) Option {
	return func(c *Configuration) {
		c.logger = logger
	}
}

// WithLookupEnv replaces the environment lookup used by `$env:` references.
func WithLookupEnv(lookup LookupFunc) Option {
	return func(c *Configuration) {
		c.resolver.lookup = lookup
	}
}

// WithEnvTerminators replaces the characters that end an `$env:` name.
func WithEnvTerminators(terminators string) Option {
	return func(c *Configuration) {
		c.resolver.terminators = terminators
	}
}

// WithHomeDir sets the home directory used for the default cache directory.
func WithHomeDir(home string) Option {
	return func(c *Configuration) {
		c.home = home
	}
}

// Configuration is a parsed configuration file with its global group
// resolved. Project views are resolved on demand.
type Configuration struct {
	file     *ini.File
	resolver *Resolver
	logger   log.Logger
	home     string
	path     string

	global   types.GlobalSettings
	problems []error
}

// Load parses the file at path and resolves its global group. Only an
// unreadable file or a fatal syntax error is returned as an error; unusable
// global values are collected in Problems.
func Load(path string, opts ...Option) (*Configuration, error) {
	c := newConfiguration(opts...)
	file, err := ini.Load(path, ini.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	c.path = path
	c.init(file)
	return c, nil
}

// New resolves an already parsed file.
func New(file *ini.File, opts ...Option) *Configuration {
	c := newConfiguration(opts...)
	c.init(file)
	return c
}

func newConfiguration(opts ...Option) *Configuration {
	c := &Configuration{
		resolver: NewResolver(),
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.home == "" {
		c.home, _ = os.UserHomeDir()
	}
	return c
}

func (c *Configuration) init(file *ini.File) {
	c.file = file
	c.problems = append(c.problems, file.Skipped()...)
	c.resolveGlobal()
}

// Path returns the file the configuration was loaded from, if any.
func (c *Configuration) Path() string {
	return c.path
}

// File returns the underlying parsed file.
func (c *Configuration) File() *ini.File {
	return c.file
}

// Global returns the resolved global settings.
func (c *Configuration) Global() types.GlobalSettings {
	return c.global
}

// Valid reports whether every global value resolved. Skipped syntax lines
// are reported in Problems but do not make the configuration invalid.
func (c *Configuration) Valid() bool {
	for _, p := range c.problems {
		if !types.IsKind(p, types.KindConfigSyntax) {
			return false
		}
	}
	return true
}

// Problems returns every issue found while parsing and resolving the
// global group.
func (c *Configuration) Problems() []error {
	problems := make([]error, len(c.problems))
	copy(problems, c.problems)
	return problems
}

// ResolveValue expands `$env:` references in raw.
func (c *Configuration) ResolveValue(raw string) (string, error) {
	return c.resolver.ResolveValue(raw)
}

func (c *Configuration) resolveGlobal() {
	g := types.GlobalSettings{LogLevel: log.InfoLevel}

	if raw := c.globalValue(KeyLogLevel, ""); raw != "" {
		level, ok := parseLogLevel(raw)
		if !ok {
			c.problem(types.NewConfigValueError("global %s: unknown level %q, expected one of %s",
				KeyLogLevel, raw, strings.Join(LogLevels, ", ")))
		}
		g.LogLevel = level
	}

	g.JavaHome = c.globalValue(KeyJavaHome, EnvMarker+"JAVA_HOME")
	g.JavaOpts = strings.TrimSpace(c.globalValue(KeyJavaOpts, ""))
	g.ServerHome = c.globalValue(KeyServerHome, EnvMarker+"CATALINA_HOME")
	g.CacheDir = c.globalValue(KeyCacheDir, filepath.Join(c.home, DirName))

	g.HTTPPort = c.globalPort(KeyHTTPPort, types.DefaultHTTPPort)
	g.ServerPort = c.globalPort(KeyServerPort, types.DefaultServerPort)
	g.JPDAPort = c.globalPort(KeyJPDAPort, types.DefaultJPDAPort)

	c.global = g
}

func (c *Configuration) globalValue(key, def string) string {
	value, err := c.resolver.ResolveValue(c.file.GetDefault(GlobalGroup, key, def))
	if err != nil {
		c.problem(types.NewError(types.KindConfigValue, err, "global %s", key))
	}
	return value
}

func (c *Configuration) globalPort(key string, def int) int {
	raw := c.globalValue(key, "")
	if raw == "" || raw == "0" {
		return def
	}
	port, err := parsePort(raw)
	if err != nil {
		c.problem(types.NewError(types.KindConfigValue, err, "global %s", key))
		return def
	}
	return port
}

func (c *Configuration) problem(err error) {
	c.logger.Error("Invalid configuration value", log.Err(err))
	c.problems = append(c.problems, err)
}

// Project resolves the named project. The result is never nil-like: when
// the project is not configured, or is malformed, Present is false and
// Reason explains why.
func (c *Configuration) Project(name string) types.Project {
	project := types.Project{Name: name}

	section, ok := c.file.Group(ini.GroupName(ProjectGroup, name))
	if !ok {
		project.Reason = types.NewResourceMissingError("project %q is not configured", name)
		return project
	}

	r := projectResolver{c: c, section: section}
	project.JavaHome = r.value(KeyJavaHome, c.global.JavaHome)
	project.ServerHome = r.value(KeyServerHome, c.global.ServerHome)
	project.JavaOpts = mergeJavaOpts(c.global.JavaOpts, r.value(KeyJavaOpts, ""))
	project.HTTPPort = r.port(KeyHTTPPort, c.global.HTTPPort)
	project.ServerPort = r.port(KeyServerPort, c.global.ServerPort)
	project.JPDAPort = r.port(KeyJPDAPort, c.global.JPDAPort)

	if r.err == nil {
		project.Documents, r.err = c.webDocuments(name)
	}

	if r.err != nil {
		c.logger.Error("Project is not usable", log.Str("project", name), log.Err(r.err))
		return types.Project{Name: name, Reason: r.err}
	}

	project.Present = true
	return project
}

// Projects returns the names of every configured project, in file order.
func (c *Configuration) Projects() []string {
	return c.file.GroupsOfKind(ProjectGroup)
}

func (c *Configuration) webDocuments(project string) (types.WebDocuments, error) {
	group := ini.GroupName(WebGroup, project)
	section, ok := c.file.Group(group)
	if !ok {
		return nil, types.NewConfigValueError("project %q has no [%s] group", project, group)
	}

	docs := make(types.WebDocuments, 0, section.Len())
	for _, key := range section.Keys() {
		raw, _ := section.Get(key)
		if strings.Count(raw, WebDelimiter) != 1 {
			return nil, types.NewConfigValueError("[%s] %s: expected exactly one %q in %q", group, key, WebDelimiter, raw)
		}

		parts := strings.SplitN(raw, WebDelimiter, 2)
		context, err := c.resolver.ResolveValue(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, types.NewError(types.KindConfigValue, err, "[%s] %s", group, key)
		}
		path, err := c.resolver.ResolveValue(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, types.NewError(types.KindConfigValue, err, "[%s] %s", group, key)
		}
		docs = append(docs, types.NewWebDocument(key, context, path))
	}
	return docs, nil
}

// projectResolver reads a project group, falling back to global values and
// keeping the first error.
type projectResolver struct {
	c       *Configuration
	section *ini.Section
	err     error
}

func (r *projectResolver) value(key, def string) string {
	raw, _ := r.section.Get(key)
	value, err := r.c.resolver.ResolveValue(raw)
	if err != nil {
		r.fail(types.NewError(types.KindConfigValue, err, "[%s] %s", r.section.Name(), key))
		return def
	}
	if value == "" {
		return def
	}
	return value
}

func (r *projectResolver) port(key string, def int) int {
	raw := r.value(key, "")
	if raw == "" || raw == "0" {
		return def
	}
	port, err := parsePort(raw)
	if err != nil {
		r.fail(types.NewError(types.KindConfigValue, err, "[%s] %s", r.section.Name(), key))
		return def
	}
	return port
}

func (r *projectResolver) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// LogLevels are the names accepted for log_level, matched case-insensitively.
var LogLevels = []string{"debug", "info", "warn", "error"}

// parseLogLevel maps a log_level name to a Level. Unknown names yield
// InfoLevel and false.
func parseLogLevel(raw string) (log.Level, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range LogLevels {
		if name == known {
			level, err := log.ParseLevel(name)
			return level, err == nil
		}
	}
	return log.InfoLevel, false
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, types.NewConfigValueError("port %q is not a number", raw)
	}
	if port < 0 || port > 65535 {
		return 0, types.NewConfigValueError("port %d is out of range", port)
	}
	return port, nil
}

func mergeJavaOpts(global, project string) string {
	project = strings.TrimSpace(project)
	switch {
	case project == "":
		return global
	case global == "":
		return project
	default:
		return global + " " + project
	}
}

// DefaultPath returns the configuration file location under home.
func DefaultPath(home string) string {
	return filepath.Join(home, DirName, FileName)
}
