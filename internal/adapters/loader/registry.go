// Package loader provides the module loader runtime that consumes import maps.
package loader

import (
	"context"
	"sync"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleLoader = (*Registry)(nil)

// Registry is an in-process module loader.
// It keeps the last exposed import map and resolves bare specifiers against it.
type Registry struct {
	mu      sync.RWMutex
	current *domain.ImportMap
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Expose installs a copy of importMap, replacing the previous one.
func (r *Registry) Expose(_ context.Context, importMap *domain.ImportMap) error {
	if importMap == nil {
		return zerr.Wrap(domain.ErrNotExposed, "refusing to expose a nil import map")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = importMap.Clone()
	return nil
}

// Import resolves specifier through the global imports of the exposed map.
func (r *Registry) Import(_ context.Context, specifier string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return "", zerr.With(zerr.Wrap(domain.ErrNotExposed, "cannot import module"), "specifier", specifier)
	}
	url, ok := r.current.Resolve(specifier, "")
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnresolvedSpecifier, "cannot import module"), "specifier", specifier)
	}
	return url, nil
}
