package ports

import (
	"context"

	"go.trai.ch/federate/internal/core/domain"
)

// ModuleLoader is the runtime that consumes the import map.
//
//go:generate mockgen -source=module_loader.go -destination=mocks/mock_module_loader.go -package=mocks
type ModuleLoader interface {
	// Expose installs the import map.
	Expose(ctx context.Context, importMap *domain.ImportMap) error

	// Import resolves a bare specifier to the URL of the module.
	Import(ctx context.Context, specifier string) (string, error)
}

// ImportMapWriter persists an exposed import map as an artifact.
type ImportMapWriter interface {
	// Write renders importMap to the output described by out.
	Write(out domain.OutputConfig, importMap *domain.ImportMap) error
}
