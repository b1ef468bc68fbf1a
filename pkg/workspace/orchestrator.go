// Package workspace prepares a project's server workspace and launches the
// server from it.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rzbill/tms/pkg/descriptor"
	"github.com/rzbill/tms/pkg/fsutil"
	"github.com/rzbill/tms/pkg/invocation"
	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/runner"
	"github.com/rzbill/tms/pkg/types"
)

// Environment variables handed to the launcher script.
const (
	EnvJavaHome     = "JAVA_HOME"
	EnvJREHome      = "JRE_HOME"
	EnvJavaOpts     = "JAVA_OPTS"
	EnvCatalinaHome = "CATALINA_HOME"
	EnvCatalinaBase = "CATALINA_BASE"
	EnvJPDAAddress  = "JPDA_ADDRESS"
	EnvTitle        = "TITLE"
)

// Request describes one run of a project.
type Request struct {
	Project   types.Project
	CacheBase string
	// Documents names the web documents to deploy. Empty deploys all of them.
	Documents []string
	Debug     bool
	NewWindow bool
}

// Plan is everything prepared for a launch.
type Plan struct {
	LaunchID   string                `json:"launch_id" yaml:"launch_id"`
	Project    string                `json:"project" yaml:"project"`
	Workspace  Workspace             `json:"workspace" yaml:"workspace"`
	Documents  types.WebDocuments    `json:"documents" yaml:"documents"`
	Invocation invocation.Invocation `json:"invocation" yaml:"invocation"`
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithShell sets the shell the invocation is rendered for.
func WithShell(shell invocation.Shell) Option {
	return func(o *Orchestrator) {
		o.shell = shell
	}
}

// WithIDGenerator replaces the launch id generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

// Orchestrator runs the preparation pipeline against a FileSystem and hands
// the result to a Launcher. Steps run in order and the first failure stops
// the pipeline; nothing already done is rolled back.
type Orchestrator struct {
	fs       fsutil.FileSystem
	launcher runner.Launcher
	logger   log.Logger
	shell    invocation.Shell
	newID    func() string
}

// New creates an Orchestrator.
func New(fs fsutil.FileSystem, launcher runner.Launcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fs:       fs,
		launcher: launcher,
		logger:   log.Discard(),
		shell:    invocation.DefaultShell(),
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.WithComponent("workspace")
	return o
}

// Run prepares the workspace and launches the server, returning the
// server's exit status.
func (o *Orchestrator) Run(ctx context.Context, req Request) (int, error) {
	plan, err := o.Prepare(ctx, req)
	if err != nil {
		return -1, err
	}

	logger := o.logger.With(log.Str("launch_id", plan.LaunchID), log.Str("project", plan.Project))
	logger.Info("Starting server",
		log.Int("http_port", req.Project.HTTPPort),
		log.Strs("documents", plan.Documents.Names()),
		log.Bool("debug", req.Debug))
	if req.Debug {
		logger.Info("Debugger listening", log.Int("jpda_port", req.Project.JPDAPort))
	}

	code, err := o.launcher.Launch(ctx, plan.Invocation)
	if err != nil {
		return code, fmt.Errorf("launch: %w", err)
	}
	logger.Info("Server exited", log.Int("exit_code", code))
	return code, nil
}

// Prepare runs every step before the launch and returns the resulting plan.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (*Plan, error) {
	plan := &Plan{
		LaunchID:  o.newID(),
		Project:   req.Project.Name,
		Workspace: NewWorkspace(req.CacheBase, req.Project.Name),
	}
	logger := o.logger.With(log.Str("launch_id", plan.LaunchID), log.Str("project", plan.Project))

	steps := []struct {
		name string
		run  func() error
	}{
		{"validate", func() error { return o.validate(req) }},
		{"copy static configuration", func() error { return o.copyStaticConfig(req.Project, plan.Workspace) }},
		{"generate server descriptor", func() error { return o.generateServerDescriptor(req.Project, plan.Workspace) }},
		{"prepare context directory", func() error { return o.fs.MkdirAll(plan.Workspace.ContextDir) }},
		{"clean stale contexts", func() error { return o.fs.RemoveChildren(plan.Workspace.ContextDir) }},
		{"clean stale webapps", func() error { return o.fs.RemoveChildren(plan.Workspace.Webapps) }},
		{"generate contexts", func() (err error) {
			plan.Documents, err = o.generateContexts(req, plan.Workspace)
			return err
		}},
		{"build invocation", func() error {
			plan.Invocation = o.buildInvocation(req, plan.Workspace)
			return nil
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("Running step", log.Str("step", step.name))
		if err := step.run(); err != nil {
			logger.Error("Step failed", log.Str("step", step.name), log.Err(err))
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}

	logger.Debug("Workspace prepared", log.Str("root", plan.Workspace.Root), log.Str("command", plan.Invocation.String()))
	return plan, nil
}

func (o *Orchestrator) validate(req Request) error {
	p := req.Project
	if err := ValidateProjectName(p.Name); err != nil {
		return err
	}
	if !p.Present {
		return types.NewError(types.KindEnvironment, p.Reason, "project %q is not usable", p.Name)
	}

	ports := []struct {
		name string
		port int
	}{
		{"http", p.HTTPPort},
		{"server", p.ServerPort},
		{"jpda", p.JPDAPort},
	}
	for _, port := range ports {
		if port.port < 1 || port.port > 65535 {
			return types.NewEnvironmentError("%s port %d is outside 1-65535", port.name, port.port)
		}
	}

	if !o.fs.IsDir(p.JavaHome) {
		return types.NewEnvironmentError("java home %q is not a directory", p.JavaHome)
	}
	if java := filepath.Join(p.JavaHome, BinDirName, JavaExecutable); !o.fs.IsFile(java) {
		return types.NewEnvironmentError("java home %q has no %s", p.JavaHome, filepath.Join(BinDirName, JavaExecutable))
	}
	if !o.fs.IsDir(p.ServerHome) {
		return types.NewEnvironmentError("tomcat home %q is not a directory", p.ServerHome)
	}
	if script := filepath.Join(p.ServerHome, BinDirName, LauncherScript); !o.fs.IsFile(script) {
		return types.NewEnvironmentError("tomcat home %q has no %s", p.ServerHome, filepath.Join(BinDirName, LauncherScript))
	}
	if !o.fs.IsDir(req.CacheBase) {
		return types.NewEnvironmentError("cache directory %q does not exist", req.CacheBase)
	}
	return nil
}

// copyStaticConfig seeds the workspace conf directory from the server
// installation. Files already in the workspace are kept and server.xml is
// never copied.
func (o *Orchestrator) copyStaticConfig(p types.Project, ws Workspace) error {
	for _, dir := range []string{ws.Root, ws.Conf, ws.Webapps, ws.Logs, ws.Temp} {
		if err := o.fs.MkdirAll(dir); err != nil {
			return err
		}
	}

	src := filepath.Join(p.ServerHome, ConfDirName)
	names, err := o.fs.ListFiles(src)
	if err != nil {
		return err
	}

	for _, name := range names {
		if name == descriptor.ServerFileName {
			continue
		}
		dst := filepath.Join(ws.Conf, name)
		if o.fs.Exists(dst) {
			continue
		}
		if err := o.fs.CopyFile(filepath.Join(src, name), dst); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) generateServerDescriptor(p types.Project, ws Workspace) error {
	text, err := descriptor.Server(p.HTTPPort, p.ServerPort)
	if err != nil {
		return err
	}
	return o.fs.WriteFile(filepath.Join(ws.Conf, descriptor.ServerFileName), []byte(text))
}

// generateContexts writes one context descriptor per selected document.
// Every document is checked before the first file is written, and no two
// documents may share a descriptor.
func (o *Orchestrator) generateContexts(req Request, ws Workspace) (types.WebDocuments, error) {
	docs, err := selectDocuments(req.Project, req.Documents)
	if err != nil {
		return nil, err
	}

	deployedAs := make(map[string]string, len(docs))
	for _, doc := range docs {
		file := descriptor.ContextFileName(doc)
		if other, ok := deployedAs[file]; ok {
			return nil, types.NewConfigValueError("web documents %q and %q both deploy to context %q", other, doc.Name, doc.Context)
		}
		deployedAs[file] = doc.Name

		if !o.fs.Exists(doc.Path) {
			return nil, types.NewResourceMissingError("web document %q: %s does not exist", doc.Name, doc.Path)
		}
	}

	if len(docs) == 0 {
		o.logger.Warn("Project has no web documents", log.Str("project", req.Project.Name))
	}

	for _, doc := range docs {
		text, err := descriptor.Context(doc)
		if err != nil {
			return nil, err
		}
		if err := o.fs.WriteFile(filepath.Join(ws.ContextDir, descriptor.ContextFileName(doc)), []byte(text)); err != nil {
			return nil, err
		}
		o.logger.Debug("Deployed web document",
			log.Str("document", doc.Name),
			log.Str("context", doc.Context),
			log.Str("path", doc.Path))
	}
	return docs, nil
}

func selectDocuments(p types.Project, names []string) (types.WebDocuments, error) {
	if len(names) == 0 {
		return p.Documents, nil
	}

	docs := make(types.WebDocuments, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		doc, ok := p.Documents.Get(name)
		if !ok {
			return nil, types.NewResourceMissingError("web document %q not found in project %q", name, p.Name)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (o *Orchestrator) buildInvocation(req Request, ws Workspace) invocation.Invocation {
	p := req.Project
	b := invocation.NewBuilder(o.shell).
		Env(EnvJavaHome, p.JavaHome).
		Env(EnvJREHome, "").
		Env(EnvJavaOpts, p.JavaOpts).
		Env(EnvCatalinaHome, p.ServerHome).
		Env(EnvCatalinaBase, ws.Root)

	if req.NewWindow {
		b.Env(EnvTitle, p.Name)
	}
	if req.Debug {
		b.Env(EnvJPDAAddress, fmt.Sprintf("0.0.0.0:%d", p.JPDAPort)).Arg("jpda")
	}
	if req.NewWindow {
		b.Arg("start")
	} else {
		b.Arg("run")
	}

	return b.Build(filepath.Join(p.ServerHome, BinDirName, LauncherScript))
}

// Clean removes project's workspace under cacheBase, or every workspace
// when project is empty. A missing directory is already clean.
func (o *Orchestrator) Clean(cacheBase, project string) error {
	target := CacheRoot(cacheBase)
	if project != "" {
		if err := ValidateProjectName(project); err != nil {
			return err
		}
		target = NewWorkspace(cacheBase, project).Root
	}

	if !o.fs.Exists(target) {
		o.logger.Info("Nothing to clean", log.Str("path", target))
		return nil
	}
	if err := o.fs.RemoveAll(target); err != nil {
		return err
	}
	o.logger.Info("Removed cache", log.Str("path", target))
	return nil
}

// Cached returns the names of the projects that have a workspace under
// cacheBase.
func (o *Orchestrator) Cached(cacheBase string) ([]string, error) {
	root := CacheRoot(cacheBase)
	if !o.fs.IsDir(root) {
		return nil, nil
	}
	return o.fs.ListDirs(root)
}
