package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/federate/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the module registry Graft node.
	RegistryNodeID graft.ID = "adapter.module_registry"
	// WriterNodeID is the unique identifier for the import map writer Graft node.
	WriterNodeID graft.ID = "adapter.importmap_writer"
)

func init() {
	graft.Register(graft.Node[ports.ModuleLoader]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModuleLoader, error) {
			return NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[ports.ImportMapWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImportMapWriter, error) {
			return NewFileWriter(""), nil
		},
	})
}
