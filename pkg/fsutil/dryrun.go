package fsutil

import (
	"fmt"
	"sync"

	"github.com/rzbill/tms/pkg/log"
)

// DryRun reads the real filesystem but only logs and records the mutations
// it is asked to perform.
type DryRun struct {
	*OS
	logger log.Logger

	mu  sync.Mutex
	ops []string
}

var _ FileSystem = &DryRun{}

// NewDryRun creates a DryRun filesystem.
func NewDryRun(logger log.Logger) *DryRun {
	if logger == nil {
		logger = log.Discard()
	}
	return &DryRun{OS: NewOS(logger), logger: logger}
}

// Operations returns the skipped mutations, in order.
func (f *DryRun) Operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ops := make([]string, len(f.ops))
	copy(ops, f.ops)
	return ops
}

func (f *DryRun) record(op string, fields ...log.Field) {
	f.mu.Lock()
	f.ops = append(f.ops, op)
	f.mu.Unlock()

	f.logger.Info("Dry run: skipped "+op, fields...)
}

func (f *DryRun) MkdirAll(path string) error {
	f.record(fmt.Sprintf("mkdir %s", path), log.Str("path", path))
	return nil
}

func (f *DryRun) CopyFile(src, dst string) error {
	f.record(fmt.Sprintf("copy %s %s", src, dst), log.Str("from", src), log.Str("to", dst))
	return nil
}

func (f *DryRun) WriteFile(path string, data []byte) error {
	f.record(fmt.Sprintf("write %s", path), log.Str("path", path), log.Int("bytes", len(data)))
	return nil
}

func (f *DryRun) RemoveChildren(dir string) error {
	f.record(fmt.Sprintf("empty %s", dir), log.Str("path", dir))
	return nil
}

func (f *DryRun) RemoveAll(path string) error {
	f.record(fmt.Sprintf("remove %s", path), log.Str("path", path))
	return nil
}
