// Package config provides the configuration loader for federate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers federate.yaml starting at cwd and walking up to the filesystem root.
// Defaults rooted at cwd are returned when no file exists.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	if abs, err := filepath.Abs(cwd); err == nil {
		cwd = abs
	}

	configPath, found := findConfiguration(cwd)
	if !found {
		l.Logger.Debug(fmt.Sprintf("no %s found, using defaults", domain.ConfigFileName))
		cfg := domain.DefaultConfig()
		cfg.Root = cwd
		return cfg, nil
	}

	var file Federatefile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	cfg, err := l.toDomain(filepath.Dir(configPath), &file)
	if err != nil {
		return nil, zerr.With(err, "config_path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) toDomain(root string, file *Federatefile) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.Root = root
	cfg.ManifestLocation = file.Manifest
	cfg.Strict = file.Strict
	cfg.SkipCachedRemotes = file.Profile.SkipCachedRemotes

	remotes, err := decodeRemotes(&file.Remotes)
	if err != nil {
		return nil, err
	}
	cfg.Remotes = remotes

	if file.Host != nil {
		if file.Host.URL == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "host requires a url"), "host", file.Host.Name)
		}
		cfg.Host = &domain.HostConfig{
			Name:     file.Host.Name,
			URL:      file.Host.URL,
			CacheTag: file.Host.CacheTag,
		}
	}

	if err := applyStorage(cfg, file.Storage); err != nil {
		return nil, err
	}

	for name, dto := range file.Sharing {
		action, err := domain.ParseAction(dto.Action)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		if action != domain.ActionSkip && dto.Override != "" {
			l.Logger.Warn(fmt.Sprintf("override of '%s' has no effect with action '%s'", name, action))
		}
		cfg.Sharing[name] = domain.SharedInfoAction{Action: action, Override: dto.Override}
	}

	if err := applyLog(cfg, file.Log); err != nil {
		return nil, err
	}

	if file.Output.Path != "" {
		cfg.Output.Path = file.Output.Path
	}
	if file.Output.Format != "" {
		switch format := domain.OutputFormat(file.Output.Format); format {
		case domain.FormatJSON, domain.FormatHTML:
			cfg.Output.Format = format
		default:
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownOutputFormat, "unsupported output format"), "format", file.Output.Format)
		}
	}

	if file.Serve.Addr != "" {
		cfg.ServeAddr = file.Serve.Addr
	}

	if file.FetchTimeout != "" {
		timeout, err := time.ParseDuration(file.FetchTimeout)
		if err != nil || timeout <= 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "invalid fetch timeout"), "fetch_timeout", file.FetchTimeout)
		}
		cfg.FetchTimeout = timeout
	}

	return cfg, nil
}

func applyStorage(cfg *domain.Config, dto StorageDTO) error {
	cfg.Storage.Clear = dto.Clear
	if dto.Driver != "" {
		switch driver := domain.StorageDriver(dto.Driver); driver {
		case domain.StorageFile, domain.StorageMemory:
			cfg.Storage.Driver = driver
		case domain.StorageSQLite:
			cfg.Storage.Driver = driver
			cfg.Storage.Path = domain.DefaultSQLitePath()
		default:
			return zerr.With(zerr.Wrap(domain.ErrUnknownStorageDriver, "unsupported storage driver"), "driver", dto.Driver)
		}
	}
	if dto.Path != "" {
		cfg.Storage.Path = dto.Path
	}
	return nil
}

func applyLog(cfg *domain.Config, dto LogDTO) error {
	cfg.Log.JSON = dto.JSON
	if dto.Level == "" {
		return nil
	}
	switch level := domain.LogLevel(dto.Level); level {
	case domain.LevelDebug, domain.LevelInfo, domain.LevelWarn, domain.LevelError:
		cfg.Log.Level = level
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "unknown log level"), "level", dto.Level)
	}
}

// decodeRemotes reads the inline remotes mapping in document order.
func decodeRemotes(node *yaml.Node) (domain.Manifest, error) {
	remotes := domain.Manifest{}
	if node.Kind == 0 || node.Tag == "!!null" {
		return remotes, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "remotes must be a mapping"), "line", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "remote entry url must be a string"), "remote", key.Value)
		}
		remotes = remotes.With(key.Value, value.Value)
	}
	return remotes, nil
}

func readAndUnmarshalYAML(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}
