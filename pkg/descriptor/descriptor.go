// Package descriptor renders the Tomcat server and context descriptors
// written into a project workspace.
package descriptor

import (
	_ "embed"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/rzbill/tms/pkg/types"
)

// Placeholders understood by the built-in templates.
const (
	ServerPort  = "server-port"
	HTTPPort    = "http-port"
	ContextPath = "context-path"
	WebDocument = "web-document"
)

// ServerFileName is the server descriptor inside the conf directory.
const ServerFileName = "server.xml"

//go:embed templates/server.xml
var serverTemplate string

//go:embed templates/context.xml
var contextTemplate string

// ServerTemplate returns the server descriptor template.
func ServerTemplate() string {
	return serverTemplate
}

// ContextTemplate returns the context descriptor template.
func ContextTemplate() string {
	return contextTemplate
}

// Render replaces every `${name}` placeholder in template with the
// XML-escaped value bound to name. A placeholder without a binding is an
// error; unused bindings are ignored.
func Render(template string, bindings map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start

		name := rest[start+2 : end]
		value, ok := bindings[name]
		if !ok {
			return "", types.NewConfigValueError("template placeholder ${%s} has no value", name)
		}

		b.WriteString(rest[:start])
		if err := xml.EscapeText(&b, []byte(value)); err != nil {
			return "", err
		}
		rest = rest[end+1:]
	}

	return b.String(), nil
}

// Server renders the server descriptor for the given ports.
func Server(httpPort, serverPort int) (string, error) {
	return Render(ServerTemplate(), map[string]string{
		ServerPort: strconv.Itoa(serverPort),
		HTTPPort:   strconv.Itoa(httpPort),
	})
}

// Context renders the context descriptor binding doc's context path to its
// artifact.
func Context(doc types.WebDocument) (string, error) {
	return Render(ContextTemplate(), map[string]string{
		ContextPath: doc.Context,
		WebDocument: doc.Path,
	})
}

// ContextFileName is the descriptor file Tomcat reads for doc.
func ContextFileName(doc types.WebDocument) string {
	return doc.DescriptorName() + ".xml"
}
