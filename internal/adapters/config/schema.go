package config

import "gopkg.in/yaml.v3"

// Federatefile represents the structure of the federate.yaml configuration file.
type Federatefile struct {
	Version  string `yaml:"version"`
	Manifest string `yaml:"manifest"`

	// Remotes is decoded by hand to keep the document order.
	Remotes yaml.Node `yaml:"remotes"`

	Host         *HostDTO              `yaml:"host"`
	Strict       bool                  `yaml:"strict"`
	Profile      ProfileDTO            `yaml:"profile"`
	Storage      StorageDTO            `yaml:"storage"`
	Sharing      map[string]SharingDTO `yaml:"sharing"`
	Log          LogDTO                `yaml:"log"`
	Output       OutputDTO             `yaml:"output"`
	Serve        ServeDTO              `yaml:"serve"`
	FetchTimeout string                `yaml:"fetchTimeout"`
}

// HostDTO describes the host application's own remote entry.
type HostDTO struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	CacheTag string `yaml:"cacheTag"`
}

// ProfileDTO holds loading behavior switches.
type ProfileDTO struct {
	SkipCachedRemotes bool `yaml:"skipCachedRemotes"`
}

// StorageDTO selects the persistence backend.
type StorageDTO struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Clear  bool   `yaml:"clear"`
}

// SharingDTO overrides the sharing decision of one package.
type SharingDTO struct {
	Action   string `yaml:"action"`
	Override string `yaml:"override"`
}

// LogDTO configures the logger.
type LogDTO struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// OutputDTO configures the import map artifact.
type OutputDTO struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// ServeDTO configures the HTTP server.
type ServeDTO struct {
	Addr string `yaml:"addr"`
}
