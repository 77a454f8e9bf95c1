package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ImportMap is a browser import map.
// A specifier may be mapped both globally and in scopes; the loader applies scope precedence.
type ImportMap struct {
	Imports map[string]string            `json:"imports"`
	Scopes  map[string]map[string]string `json:"scopes,omitempty"`
}

// NewImportMap returns an empty import map.
func NewImportMap() *ImportMap {
	return &ImportMap{Imports: map[string]string{}}
}

// AddImport maps specifier to url globally.
func (m *ImportMap) AddImport(specifier, url string) {
	if m.Imports == nil {
		m.Imports = map[string]string{}
	}
	m.Imports[specifier] = url
}

// AddScoped maps specifier to url inside scope.
func (m *ImportMap) AddScoped(scope, specifier, url string) {
	if m.Scopes == nil {
		m.Scopes = map[string]map[string]string{}
	}
	if m.Scopes[scope] == nil {
		m.Scopes[scope] = map[string]string{}
	}
	m.Scopes[scope][specifier] = url
}

// Merge copies every mapping of other into m. Mappings of other win.
func (m *ImportMap) Merge(other *ImportMap) {
	if other == nil {
		return
	}
	for k, v := range other.Imports {
		m.AddImport(k, v)
	}
	for scope, entries := range other.Scopes {
		for k, v := range entries {
			m.AddScoped(scope, k, v)
		}
	}
}

// Clone returns a deep copy of the import map.
func (m *ImportMap) Clone() *ImportMap {
	out := NewImportMap()
	out.Merge(m)
	return out
}

// Digest returns a stable hash of the map content.
// Equal maps produce equal digests regardless of insertion order.
func (m *ImportMap) Digest() uint64 {
	// encoding/json writes map keys in sorted order.
	data, err := json.Marshal(m)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

// Resolve maps specifier as seen from a module located at referrer.
// The longest matching scope prefix wins over the global imports.
func (m *ImportMap) Resolve(specifier, referrer string) (string, bool) {
	scopes := slices.Collect(maps.Keys(m.Scopes))
	slices.SortFunc(scopes, func(a, b string) int {
		return len(b) - len(a)
	})
	for _, scope := range scopes {
		if referrer == "" || !strings.HasPrefix(referrer, scope) {
			continue
		}
		if url, ok := m.Scopes[scope][specifier]; ok {
			return url, true
		}
	}
	url, ok := m.Imports[specifier]
	return url, ok
}
