package types

import (
	"strings"

	"github.com/rzbill/tms/pkg/log"
)

// Default global values used when the configuration file leaves them unset.
const (
	DefaultHTTPPort   = 8080
	DefaultServerPort = 8005
	DefaultJPDAPort   = 5005
)

// GlobalSettings holds the resolved values of the `global` group.
type GlobalSettings struct {
	LogLevel   log.Level `json:"log_level" yaml:"log_level"`
	JavaHome   string    `json:"java_home" yaml:"java_home"`
	JavaOpts   string    `json:"java_opts" yaml:"java_opts"`
	ServerHome string    `json:"tomcat" yaml:"tomcat"`
	HTTPPort   int       `json:"http_port" yaml:"http_port"`
	ServerPort int       `json:"server_port" yaml:"server_port"`
	JPDAPort   int       `json:"jpda_port" yaml:"jpda_port"`
	CacheDir   string    `json:"cache_dir" yaml:"cache_dir"`
}

// Project is one deployable unit with its global settings merged in.
//
// A project whose Present flag is false was either not configured or is
// malformed; Reason says which, and no other field may be relied upon.
type Project struct {
	Name       string       `json:"name" yaml:"name"`
	Present    bool         `json:"present" yaml:"present"`
	Reason     error        `json:"-" yaml:"-"`
	JavaHome   string       `json:"java_home" yaml:"java_home"`
	JavaOpts   string       `json:"java_opts" yaml:"java_opts"`
	ServerHome string       `json:"tomcat" yaml:"tomcat"`
	HTTPPort   int          `json:"http_port" yaml:"http_port"`
	ServerPort int          `json:"server_port" yaml:"server_port"`
	JPDAPort   int          `json:"jpda_port" yaml:"jpda_port"`
	Documents  WebDocuments `json:"documents" yaml:"documents"`
}

// PortOverrides carries ports supplied on the command line; zero means unset.
type PortOverrides struct {
	HTTPPort   int
	ServerPort int
	JPDAPort   int
}

// ApplyOverrides returns a copy of p with every non-zero override applied.
func (p Project) ApplyOverrides(o PortOverrides) Project {
	if o.HTTPPort != 0 {
		p.HTTPPort = o.HTTPPort
	}
	if o.ServerPort != 0 {
		p.ServerPort = o.ServerPort
	}
	if o.JPDAPort != 0 {
		p.JPDAPort = o.JPDAPort
	}
	return p
}

// WebDocument maps a deployable artifact to a context path.
type WebDocument struct {
	Name    string `json:"name" yaml:"name"`
	Context string `json:"context" yaml:"context"`
	Path    string `json:"path" yaml:"path"`
}

// NewWebDocument creates a WebDocument, prefixing the context with `/` when
// it does not start with one. An empty context is the root context.
func NewWebDocument(name, context, path string) WebDocument {
	if !strings.HasPrefix(context, "/") {
		context = "/" + context
	}
	return WebDocument{Name: name, Context: context, Path: path}
}

// DescriptorName is the base name (without `.xml`) of the context
// descriptor Tomcat expects for this document's context path: `ROOT` for
// `/`, and nested segments joined with `#`.
func (d WebDocument) DescriptorName() string {
	name := strings.TrimPrefix(d.Context, "/")
	if name == "" {
		return "ROOT"
	}
	return strings.ReplaceAll(name, "/", "#")
}

// WebDocuments is the ordered web document map of a project.
type WebDocuments []WebDocument

// Get returns the document registered under name.
func (ds WebDocuments) Get(name string) (WebDocument, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return WebDocument{}, false
}

// Names returns the document names in configuration order.
func (ds WebDocuments) Names() []string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Name)
	}
	return names
}
