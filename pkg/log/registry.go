package log

import (
	"sort"
	"sync"
)

// Registry hands out one logger per name. It is built once by the CLI and
// passed to the components that need logging.
type Registry struct {
	mu      sync.Mutex
	root    Logger
	loggers map[string]Logger
}

// NewRegistry creates a registry deriving every named logger from root.
func NewRegistry(root Logger) *Registry {
	if root == nil {
		root = Discard()
	}
	return &Registry{
		root:    root,
		loggers: make(map[string]Logger),
	}
}

// Get returns the logger registered under name, creating it on first use.
func (r *Registry) Get(name string) Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if logger, ok := r.loggers[name]; ok {
		return logger
	}
	logger := r.root.WithComponent(name)
	r.loggers[name] = logger
	return logger
}

// Root returns the unnamed logger every named logger derives from.
func (r *Registry) Root() Logger {
	return r.root
}

// SetLevel changes the threshold of the root logger and of every logger
// handed out so far.
func (r *Registry) SetLevel(level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.root.SetLevel(level)
	for _, logger := range r.loggers {
		logger.SetLevel(level)
	}
}

// Names returns the names of the loggers created so far, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
