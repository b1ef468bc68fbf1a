package cmd

import (
	"github.com/rzbill/tms/internal/config"
	"github.com/rzbill/tms/pkg/fsutil"
	"github.com/rzbill/tms/pkg/types"
	"github.com/rzbill/tms/pkg/workspace"
	"github.com/spf13/cobra"
)

// Status labels shown by list.
const (
	statusReady     = "ready"
	statusInvalid   = "invalid"
	statusPresent   = "present"
	statusMissing   = "missing"
	statusCached    = "cached"
	statusNotCached = "not cached"
)

// projectSummary is one row of `tms list`.
type projectSummary struct {
	Name       string `json:"name" yaml:"name"`
	Status     string `json:"status" yaml:"status"`
	Reason     string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Documents  int    `json:"documents" yaml:"documents"`
	HTTPPort   int    `json:"http_port,omitempty" yaml:"http_port,omitempty"`
	ServerPort int    `json:"server_port,omitempty" yaml:"server_port,omitempty"`
	JPDAPort   int    `json:"jpda_port,omitempty" yaml:"jpda_port,omitempty"`
	Cached     bool   `json:"cached" yaml:"cached"`
}

// documentStatus is one row of `tms list <project>`.
type documentStatus struct {
	Name     string `json:"name" yaml:"name"`
	Context  string `json:"context" yaml:"context"`
	Path     string `json:"path" yaml:"path"`
	Artifact string `json:"artifact" yaml:"artifact"`
}

func newListCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list [project]",
		Aliases: []string{"ls"},
		Short:   "List projects, or the web documents of a project",
		Long: `List the configured projects with their ports and cache state.

With a project name, list that project's web documents and whether each
artifact exists on disk.`,
		Example: `  # List every project
  tms list

  # List the web documents of the shop project as YAML
  tms list shop -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return a.listDocuments(cfg, args[0], outputFormat)
			}
			return a.listProjects(cfg, outputFormat)
		},
	}

	addOutputFlag(cmd, &outputFormat)
	return cmd
}

func (a *app) listProjects(cfg *config.Configuration, outputFormat string) error {
	fs := fsutil.NewOS(a.registry.Get("fsutil"))
	orch := workspace.New(fs, nil, workspace.WithLogger(a.registry.Root()))

	cached, err := orch.Cached(a.cacheBase(cfg))
	if err != nil {
		return err
	}
	isCached := make(map[string]bool, len(cached))
	for _, name := range cached {
		isCached[name] = true
	}

	names := cfg.Projects()
	summaries := make([]projectSummary, 0, len(names))
	for _, name := range names {
		p := cfg.Project(name)
		summary := projectSummary{Name: name, Cached: isCached[name]}
		if !p.Present {
			summary.Status = statusInvalid
			summary.Reason = p.Reason.Error()
		} else {
			summary.Status = statusReady
			summary.Documents = len(p.Documents)
			summary.HTTPPort = p.HTTPPort
			summary.ServerPort = p.ServerPort
			summary.JPDAPort = p.JPDAPort
		}
		summaries = append(summaries, summary)
	}

	return outputResource(a.stdout, outputFormat, summaries, func() error {
		return NewResourceTable().RenderProjects(a.stdout, summaries)
	})
}

func (a *app) listDocuments(cfg *config.Configuration, name, outputFormat string) error {
	p, err := presentProject(cfg, name)
	if err != nil {
		return err
	}

	fs := fsutil.NewOS(a.registry.Get("fsutil"))
	docs := make([]documentStatus, 0, len(p.Documents))
	for _, doc := range p.Documents {
		status := documentStatus{Name: doc.Name, Context: doc.Context, Path: doc.Path, Artifact: statusMissing}
		if fs.Exists(doc.Path) {
			status.Artifact = statusPresent
		}
		docs = append(docs, status)
	}

	return outputResource(a.stdout, outputFormat, docs, func() error {
		return NewResourceTable().RenderDocuments(a.stdout, docs)
	})
}

// presentProject resolves name and fails with the reason when it cannot be
// used.
func presentProject(cfg *config.Configuration, name string) (types.Project, error) {
	p := cfg.Project(name)
	if !p.Present {
		return p, p.Reason
	}
	return p, nil
}
