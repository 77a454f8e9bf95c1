package ports

import "go.trai.ch/federate/internal/core/domain"

// ConfigLoader defines the interface for loading the federation configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the config file starting at cwd and walking up.
	// Defaults are returned when no file exists.
	Load(cwd string) (*domain.Config, error)
}
