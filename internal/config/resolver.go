package config

import (
	"os"
	"strings"

	"github.com/rzbill/tms/pkg/types"
)

// EnvMarker introduces an environment variable reference inside a value.
const EnvMarker = "$env:"

// MaxInterpolationPasses bounds the substitutions made for one value, so a
// variable whose value references itself cannot loop forever.
const MaxInterpolationPasses = 64

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// Resolver expands `$env:NAME` references.
type Resolver struct {
	lookup      LookupFunc
	terminators string
	maxPasses   int
}

// NewResolver creates a Resolver reading the process environment and using
// the platform's terminator set.
func NewResolver() *Resolver {
	return &Resolver{
		lookup:      os.LookupEnv,
		terminators: DefaultEnvTerminators,
		maxPasses:   MaxInterpolationPasses,
	}
}

// ResolveValue replaces the first `$env:NAME` reference in raw with the
// variable's value (empty when unset) and repeats on the result until no
// reference is left. NAME runs up to the first terminator character or the
// end of the string.
func (r *Resolver) ResolveValue(raw string) (string, error) {
	value := raw
	for pass := 0; ; pass++ {
		start := strings.Index(value, EnvMarker)
		if start < 0 {
			return value, nil
		}
		if pass >= r.maxPasses {
			return value, types.NewConfigValueError("environment references in %q did not settle after %d substitutions", raw, r.maxPasses)
		}

		nameStart := start + len(EnvMarker)
		end := len(value)
		if i := strings.IndexAny(value[nameStart:], r.terminators); i >= 0 {
			end = nameStart + i
		}

		env, _ := r.lookup(value[nameStart:end])
		value = value[:start] + env + value[end:]
	}
}
