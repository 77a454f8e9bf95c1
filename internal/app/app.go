// Package app implements the application layer for federate.
package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/federate/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

// RepositoryFactory opens the shared externals and remote info repositories on storage.
// With clearStorage set, the persisted state of both is discarded first.
type RepositoryFactory func(storage ports.Storage, clearStorage bool) (ports.SharedExternalsRepository, ports.RemoteInfoRepository, error)

// Dependencies are the collaborators of the App.
type Dependencies struct {
	ConfigLoader ports.ConfigLoader
	Logger       ports.Logger
	Manifests    ports.ManifestProvider
	Entries      ports.RemoteEntryProvider
	Loader       ports.ModuleLoader
	Writer       ports.ImportMapWriter
	Tracer       ports.Tracer
	Storage      ports.StorageOpener
	Repositories RepositoryFactory
	Watchers     ports.WatcherFactory
	// Environment detects the terminal output mode. Defaults to detector.DetectEnvironment.
	Environment func() detector.OutputMode
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	manifests    ports.ManifestProvider
	entries      ports.RemoteEntryProvider
	loader       ports.ModuleLoader
	writer       ports.ImportMapWriter
	tracer       ports.Tracer
	opener       ports.StorageOpener
	repositories RepositoryFactory
	watchers     ports.WatcherFactory
	environment  func() detector.OutputMode

	// mu serializes federation runs and guards the storage handle.
	mu           sync.Mutex
	storage      ports.Storage
	closeStorage func() error
	cleared      bool

	exposedMu sync.RWMutex
	exposed   *domain.ImportMap
}

// New creates a new App instance.
func New(deps Dependencies) *App {
	environment := deps.Environment
	if environment == nil {
		environment = detector.DetectEnvironment
	}
	return &App{
		configLoader: deps.ConfigLoader,
		logger:       deps.Logger,
		manifests:    deps.Manifests,
		entries:      deps.Entries,
		loader:       deps.Loader,
		writer:       deps.Writer,
		tracer:       deps.Tracer,
		opener:       deps.Storage,
		repositories: deps.Repositories,
		watchers:     deps.Watchers,
		environment:  environment,
	}
}

// Overrides are command line settings that take precedence over federate.yaml.
type Overrides struct {
	Manifest string
	Strict   bool
	Output   string
	Format   string
	Storage  string
	Clear    bool
	LogLevel string
	LogJSON  bool
	Addr     string
	// OutputMode is one of auto, styled, plain or ci.
	OutputMode string
}

type levelSetter interface {
	SetLevel(level domain.LogLevel)
	SetJSON(enable bool)
	SetPlain(enable bool)
}

// LoadConfig loads the configuration found from cwd and applies overrides.
// The logger is reconfigured to the resulting log settings.
func (a *App) LoadConfig(cwd string, overrides Overrides) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, err
	}
	cfg.Plain = detector.ResolveMode(a.environment(), overrides.OutputMode) == detector.ModePlain

	if ls, ok := a.logger.(levelSetter); ok {
		ls.SetLevel(cfg.Log.Level)
		ls.SetJSON(cfg.Log.JSON)
		ls.SetPlain(cfg.Plain)
	}
	return cfg, nil
}

func applyOverrides(cfg *domain.Config, o Overrides) error {
	if o.Manifest != "" {
		cfg.ManifestLocation = o.Manifest
	}
	if o.Strict {
		cfg.Strict = true
	}
	if o.Output != "" {
		cfg.Output.Path = o.Output
	}
	if o.Format != "" {
		switch format := domain.OutputFormat(o.Format); format {
		case domain.FormatJSON, domain.FormatHTML:
			cfg.Output.Format = format
		default:
			return zerr.With(zerr.Wrap(domain.ErrUnknownOutputFormat, "unsupported output format"), "format", o.Format)
		}
	}
	if o.Storage != "" {
		switch driver := domain.StorageDriver(o.Storage); driver {
		case domain.StorageFile:
			cfg.Storage = domain.StorageConfig{Driver: driver, Path: domain.DefaultStorePath(), Clear: cfg.Storage.Clear}
		case domain.StorageSQLite:
			cfg.Storage = domain.StorageConfig{Driver: driver, Path: domain.DefaultSQLitePath(), Clear: cfg.Storage.Clear}
		case domain.StorageMemory:
			cfg.Storage = domain.StorageConfig{Driver: driver, Clear: cfg.Storage.Clear}
		default:
			return zerr.With(zerr.Wrap(domain.ErrUnknownStorageDriver, "unsupported storage driver"), "driver", o.Storage)
		}
	}
	if o.Clear {
		cfg.Storage.Clear = true
	}
	if o.LogLevel != "" {
		switch level := domain.LogLevel(o.LogLevel); level {
		case domain.LevelDebug, domain.LevelInfo, domain.LevelWarn, domain.LevelError:
			cfg.Log.Level = level
		default:
			return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "unknown log level"), "level", o.LogLevel)
		}
	}
	if o.LogJSON {
		cfg.Log.JSON = true
	}
	if o.Addr != "" {
		cfg.ServeAddr = o.Addr
	}
	return nil
}

// Close releases the storage handle.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closeStorage == nil {
		return nil
	}
	err := a.closeStorage()
	a.storage, a.closeStorage = nil, nil
	return err
}

// openRepositories returns repositories over the committed state.
// The storage is opened on first use and kept for the lifetime of the App.
// The caller must hold a.mu.
func (a *App) openRepositories(cfg *domain.Config) (ports.SharedExternalsRepository, ports.RemoteInfoRepository, error) {
	if err := a.openStorage(cfg); err != nil {
		return nil, nil, err
	}

	clearStorage := cfg.Storage.Clear && !a.cleared
	shared, remotes, err := a.repositories(a.storage, clearStorage)
	if err != nil {
		return nil, nil, err
	}
	if clearStorage {
		a.logger.Debug("Cleared persisted shared externals and remotes.")
		a.cleared = true
	}
	return shared, remotes, nil
}

// openStorage opens the configured storage unless it is open already.
// The caller must hold a.mu.
func (a *App) openStorage(cfg *domain.Config) error {
	if a.storage != nil {
		return nil
	}
	storage, closeFn, err := a.opener.Open(cfg.Root, cfg.Storage)
	if err != nil {
		return err
	}
	a.storage, a.closeStorage = storage, closeFn
	return nil
}

// setExposed records the import map handed to the module loader.
func (a *App) setExposed(m *domain.ImportMap) {
	a.exposedMu.Lock()
	defer a.exposedMu.Unlock()
	a.exposed = m
}

// ImportMap returns a copy of the import map exposed last.
func (a *App) ImportMap() (*domain.ImportMap, bool) {
	a.exposedMu.RLock()
	defer a.exposedMu.RUnlock()

	if a.exposed == nil {
		return nil, false
	}
	return a.exposed.Clone(), true
}

// locate turns a configured location into one the fetch providers can read.
// URLs pass through, relative paths are resolved against the config root.
func locate(root, location string) string {
	if strings.Contains(location, "://") || filepath.IsAbs(location) || root == "" {
		return location
	}
	return filepath.Join(root, location)
}

// isLocal reports whether location refers to the local filesystem.
func isLocal(location string) bool {
	return !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://")
}

func hostName(host *domain.HostConfig) string {
	if host.Name == "" {
		return "host"
	}
	return host.Name
}

func outputPath(cfg *domain.Config) string {
	if filepath.IsAbs(cfg.Output.Path) {
		return cfg.Output.Path
	}
	return filepath.Join(cfg.Root, cfg.Output.Path)
}

func describeMap(m *domain.ImportMap) string {
	return fmt.Sprintf("%d imports, %d scopes", len(m.Imports), len(m.Scopes))
}
