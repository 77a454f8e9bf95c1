package domain

import (
	"maps"
	"slices"
)

// SharedVersion is one remote's declaration of one shared package at one version.
type SharedVersion struct {
	// Version is the exact version the remote ships.
	Version string `json:"version"`
	// RequiredVersion is the range the remote accepts.
	RequiredVersion string `json:"requiredVersion"`
	// StrictVersion forbids substituting a version outside RequiredVersion.
	StrictVersion bool `json:"strictVersion"`
	// Singleton requires a single active version across all remotes.
	Singleton bool `json:"singleton"`
	// URL is the physical location of the package file.
	URL string `json:"url"`
	// Dirty marks a record added in the current resolution pass that is not yet confirmed.
	Dirty bool `json:"dirty"`
}

// Range returns the range the record accepts. An empty RequiredVersion means the exact version.
func (v SharedVersion) Range() string {
	if v.RequiredVersion == "" {
		return v.Version
	}
	return v.RequiredVersion
}

// SharedExternal holds every known version of one shared package.
type SharedExternal struct {
	// Dirty is true while any record of the entry is pending.
	Dirty bool `json:"dirty"`
	// Versions never contains two records with the same version string.
	Versions []SharedVersion `json:"versions"`
}

// Find returns the record for the given version string.
func (e SharedExternal) Find(version string) (SharedVersion, bool) {
	for _, v := range e.Versions {
		if v.Version == version {
			return v, true
		}
	}
	return SharedVersion{}, false
}

// Clone returns a deep copy of the entry.
func (e SharedExternal) Clone() SharedExternal {
	return SharedExternal{Dirty: e.Dirty, Versions: slices.Clone(e.Versions)}
}

// Confirmed returns a copy of the entry with every dirty flag cleared.
func (e SharedExternal) Confirmed() SharedExternal {
	out := e.Clone()
	out.Dirty = false
	for i := range out.Versions {
		out.Versions[i].Dirty = false
	}
	return out
}

// SharedExternals maps a package name to its shared entry.
type SharedExternals map[string]SharedExternal

// Names returns the package names in sorted order.
func (s SharedExternals) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns a deep copy of the mapping.
func (s SharedExternals) Clone() SharedExternals {
	out := make(SharedExternals, len(s))
	for name, entry := range s {
		out[name] = entry.Clone()
	}
	return out
}
