package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rzbill/tms/pkg/cli/format"
	"github.com/rzbill/tms/pkg/types"
)

// ResourceTable renders tms resources as pterm tables.
type ResourceTable struct {
	Headers     []string
	ShowHeaders bool

	tableRenderer *pterm.TablePrinter
}

// NewResourceTable creates a new resource table with default configuration
func NewResourceTable() *ResourceTable {
	table := pterm.DefaultTable.WithHasHeader(true)

	headerStyle := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	table = table.WithHeaderStyle(headerStyle)

	return &ResourceTable{
		ShowHeaders:   true,
		tableRenderer: table,
	}
}

// render writes rows to w, preceded by the headers when they are shown.
func (t *ResourceTable) render(w io.Writer, rows [][]string) error {
	data := rows
	if t.ShowHeaders {
		data = append([][]string{t.Headers}, rows...)
	}

	text, err := t.tableRenderer.WithHasHeader(t.ShowHeaders).WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

// RenderProjects renders one row per configured project.
func (t *ResourceTable) RenderProjects(w io.Writer, projects []projectSummary) error {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects configured")
		return nil
	}

	if len(t.Headers) == 0 {
		t.Headers = []string{"NAME", "STATUS", "DOCUMENTS", "HTTP", "SERVER", "JPDA", "CACHE"}
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		if p.Status != statusReady {
			rows = append(rows, []string{p.Name, format.StatusLabel(p.Status), "-", "-", "-", "-", cacheLabel(p.Cached)})
			continue
		}
		rows = append(rows, []string{
			p.Name,
			format.StatusLabel(p.Status),
			strconv.Itoa(p.Documents),
			strconv.Itoa(p.HTTPPort),
			strconv.Itoa(p.ServerPort),
			strconv.Itoa(p.JPDAPort),
			cacheLabel(p.Cached),
		})
	}
	return t.render(w, rows)
}

// RenderDocuments renders one row per web document of a project.
func (t *ResourceTable) RenderDocuments(w io.Writer, docs []documentStatus) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No web documents configured")
		return nil
	}

	if len(t.Headers) == 0 {
		t.Headers = []string{"NAME", "CONTEXT", "PATH", "ARTIFACT"}
	}

	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		artifact := format.StatusSymbol(d.Artifact == statusPresent) + " " + format.StatusLabel(d.Artifact)
		rows = append(rows, []string{d.Name, d.Context, d.Path, artifact})
	}
	return t.render(w, rows)
}

// RenderProject renders the resolved settings of one project as
// field/value rows.
func (t *ResourceTable) RenderProject(w io.Writer, p types.Project) error {
	if len(t.Headers) == 0 {
		t.Headers = []string{"FIELD", "VALUE"}
	}

	rows := [][]string{
		{"name", p.Name},
		{"java_home", p.JavaHome},
		{"tomcat", p.ServerHome},
		{"java_opts", p.JavaOpts},
		{"http_port", strconv.Itoa(p.HTTPPort)},
		{"server_port", strconv.Itoa(p.ServerPort)},
		{"jpda_port", strconv.Itoa(p.JPDAPort)},
		{"documents", strings.Join(p.Documents.Names(), ", ")},
	}
	return t.render(w, rows)
}

func cacheLabel(cached bool) string {
	if cached {
		return format.StatusLabel(statusCached)
	}
	return format.StatusLabel(statusNotCached)
}
