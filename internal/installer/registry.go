package installer

import (
	"context"
	"sort"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/platform"
)

// ErrDuplicateTarget is returned when two targets share a name.
var ErrDuplicateTarget = errors.New("duplicate target name")

// Registry holds the full set of targets. It is built once at startup
// and read-only afterwards.
type Registry struct {
	targets map[string]Target
}

// NewRegistry builds a registry from the given targets.
// Returns ErrDuplicateTarget if two targets share a name.
func NewRegistry(targets ...Target) (*Registry, error) {
	r := &Registry{targets: make(map[string]Target, len(targets))}
	for _, t := range targets {
		if _, exists := r.targets[t.Name]; exists {
			return nil, errors.Wrapf(ErrDuplicateTarget, "%s", t.Name)
		}
		r.targets[t.Name] = t
	}
	return r, nil
}

// Get returns the named target.
func (r *Registry) Get(name string) (Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// All returns every target sorted by name.
func (r *Registry) All() []Target {
	out := make([]Target, 0, len(r.targets))
	for _, t := range r.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every target name sorted.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}

// Dispatch looks up the target and runs its install protocol against the
// described environment. An unsupported category is an expected,
// first-class outcome (Skipped), never an error; only an unknown target
// name errors.
func (r *Registry) Dispatch(ctx context.Context, name string, desc platform.Descriptor) (Result, error) {
	t, ok := r.Get(name)
	if !ok {
		return Result{}, errors.Wrapf(errors.ErrUnknownTarget, "%s", name)
	}
	return t.Install(ctx, desc), nil
}
