package domain

import "time"

// StorageDriver selects the persistence backend.
type StorageDriver string

const (
	// StorageFile persists each namespace as a JSON file.
	StorageFile StorageDriver = "file"
	// StorageSQLite persists namespaces in a sqlite database.
	StorageSQLite StorageDriver = "sqlite"
	// StorageMemory keeps namespaces in process memory.
	StorageMemory StorageDriver = "memory"
)

// OutputFormat selects how the import map is written.
type OutputFormat string

const (
	// FormatJSON writes the import map as a JSON document.
	FormatJSON OutputFormat = "json"
	// FormatHTML writes the import map as an HTML script tag.
	FormatHTML OutputFormat = "html"
)

// LogLevel is the minimum level of emitted log records.
type LogLevel string

// Log levels in increasing severity.
const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// HostConfig describes the host application's own remote entry.
type HostConfig struct {
	Name     string
	URL      string
	CacheTag string
}

// StorageConfig configures the persistence port.
type StorageConfig struct {
	Driver StorageDriver
	Path   string
	Clear  bool
}

// OutputConfig configures where the import map is written.
type OutputConfig struct {
	Path   string
	Format OutputFormat
}

// WritesFile reports whether the import map is written to a file.
func (o OutputConfig) WritesFile() bool {
	return o.Path != "" && o.Path != StdoutPath
}

// LogConfig configures the logger.
type LogConfig struct {
	Level LogLevel
	JSON  bool
}

// Config is the resolved configuration of a federation run.
type Config struct {
	// Root is the directory the config was loaded from.
	Root string
	// ManifestLocation is a URL or path of a manifest document.
	ManifestLocation string
	// Remotes is an inline manifest, merged after ManifestLocation.
	Remotes Manifest
	Host    *HostConfig
	Strict  bool
	// SkipCachedRemotes avoids refetching remotes already known to the remote repository.
	SkipCachedRemotes bool
	Storage           StorageConfig
	// Sharing overrides the resolver's decision per package.
	Sharing SharedInfoActions
	Log     LogConfig
	// Plain disables colors in logs and reports.
	Plain        bool
	Output       OutputConfig
	ServeAddr    string
	FetchTimeout time.Duration
}

// DefaultFetchTimeout bounds every manifest and remote entry request.
const DefaultFetchTimeout = 10 * time.Second

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Storage: StorageConfig{
			Driver: StorageFile,
			Path:   DefaultStorePath(),
		},
		Sharing: SharedInfoActions{},
		Log: LogConfig{
			Level: LevelInfo,
		},
		Output: OutputConfig{
			Path:   DefaultImportMapFile,
			Format: FormatJSON,
		},
		ServeAddr:    DefaultServeAddr,
		FetchTimeout: DefaultFetchTimeout,
	}
}
