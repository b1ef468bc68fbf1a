package ini

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rzbill/tms/pkg/log"
	"github.com/rzbill/tms/pkg/types"
)

const maxLineSize = 1 << 20

// Option configures the parser.
type Option func(*parser)

// WithLogger sets the logger that reports skipped lines.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

type parser struct {
	logger log.Logger
}

// Load reads and parses the file at path.
func Load(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapIOError(err, "open configuration file %s", path)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// ParseString parses configuration text.
func ParseString(text string, opts ...Option) (*File, error) {
	return Parse(strings.NewReader(text), opts...)
}

// Parse reads configuration text from r.
//
// A line without `=` inside a group is reported and skipped. Any non-group,
// non-comment line before the first group header fails the parse.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	p := &parser{logger: log.Discard()}
	for _, opt := range opts {
		opt(p)
	}

	file := newFile()
	var current *Section

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimLeft(scanner.Text(), " \t")

		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' {
			name := line[1:]
			if end := strings.IndexByte(name, ']'); end >= 0 {
				name = name[:end]
			}
			current = file.open(name)
			continue
		}

		if current == nil {
			return nil, types.NewConfigSyntaxError("line %d: %q appears before any [group] header", lineNo, line)
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			p.skip(file, types.NewConfigSyntaxError("line %d: missing '=' in %q", lineNo, line))
			continue
		}

		key := line[:eq]
		if sp := strings.IndexByte(key, ' '); sp >= 0 {
			key = key[:sp]
		}
		if key == "" {
			p.skip(file, types.NewConfigSyntaxError("line %d: empty key in %q", lineNo, line))
			continue
		}

		current.set(key, strings.Trim(line[eq+1:], " \t"))
	}

	if err := scanner.Err(); err != nil {
		return nil, types.WrapIOError(err, "read configuration")
	}

	return file, nil
}

func (p *parser) skip(file *File, err *types.Error) {
	p.logger.Warn("Skipping configuration line", log.Err(err))
	file.skipped = append(file.skipped, err)
}
