// Package ini parses the tms configuration dialect: `[group]` headers,
// `key = value` lines and `#`/`;` comments. Group names may carry a quoted
// instance name (`[project "web"]`). Values are kept raw; no interpolation
// happens here.
package ini

import (
	"strings"
)

// Section is one group of key/value pairs in file order.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

func newSection(name string) *Section {
	return &Section{name: name, values: make(map[string]string)}
}

// Name returns the full group name, e.g. `web "shop"`.
func (s *Section) Name() string {
	return s.name
}

// Keys returns the keys in the order they first appeared.
func (s *Section) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Get returns the raw value of key.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of keys in the section.
func (s *Section) Len() int {
	return len(s.keys)
}

// set stores value under key. A repeated key overwrites the earlier value
// but keeps its original position.
func (s *Section) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// File is a parsed configuration file. It is immutable once returned by Parse.
type File struct {
	order    []string
	sections map[string]*Section
	skipped  []error
}

func newFile() *File {
	return &File{sections: make(map[string]*Section)}
}

// Groups returns every group name in the order it was first opened.
func (f *File) Groups() []string {
	groups := make([]string, len(f.order))
	copy(groups, f.order)
	return groups
}

// Group returns the section called name.
func (f *File) Group(name string) (*Section, bool) {
	s, ok := f.sections[name]
	return s, ok
}

// Get returns the raw value of key in group.
func (f *File) Get(group, key string) (string, bool) {
	s, ok := f.sections[group]
	if !ok {
		return "", false
	}
	return s.Get(key)
}

// GetDefault returns the raw value of key in group, or def when the group
// or key is absent or the value is empty.
func (f *File) GetDefault(group, key, def string) string {
	v, ok := f.Get(group, key)
	if !ok || v == "" {
		return def
	}
	return v
}

// GroupsOfKind returns the instance names of every `kind "name"` group,
// in file order.
func (f *File) GroupsOfKind(kind string) []string {
	var names []string
	for _, group := range f.order {
		k, name := SplitGroupName(group)
		if k == kind && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Skipped returns the non-fatal syntax errors of lines that were ignored.
func (f *File) Skipped() []error {
	skipped := make([]error, len(f.skipped))
	copy(skipped, f.skipped)
	return skipped
}

func (f *File) open(name string) *Section {
	if s, ok := f.sections[name]; ok {
		return s
	}
	s := newSection(name)
	f.sections[name] = s
	f.order = append(f.order, name)
	return s
}

// GroupName builds the name of an instance group, e.g. GroupName("web", "shop")
// returns `web "shop"`.
func GroupName(kind, name string) string {
	return kind + ` "` + name + `"`
}

// SplitGroupName splits `kind "name"` into its kind and instance name. A
// group without a quoted instance returns an empty name.
func SplitGroupName(group string) (kind, name string) {
	i := strings.IndexByte(group, '"')
	if i < 0 {
		return strings.TrimSpace(group), ""
	}
	kind = strings.TrimSpace(group[:i])
	rest := group[i+1:]
	if j := strings.IndexByte(rest, '"'); j >= 0 {
		rest = rest[:j]
	}
	return kind, rest
}
