package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/federate/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/fetch"      //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/loader"     //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/repository" //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/storage"    //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fetch.NodeID,
			loader.RegistryNodeID,
			loader.WriterNodeID,
			telemetry.TracerNodeID,
			storage.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	client, err := graft.Dep[*fetch.Client](ctx)
	if err != nil {
		return nil, err
	}

	moduleLoader, err := graft.Dep[ports.ModuleLoader](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.ImportMapWriter](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.StorageOpener](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(Dependencies{
		ConfigLoader: configLoader,
		Logger:       log,
		Manifests:    client,
		Entries:      client,
		Loader:       moduleLoader,
		Writer:       writer,
		Tracer:       tracer,
		Storage:      opener,
		Repositories: OpenRepositories,
		Watchers:     watchers,
	}), nil
}

// OpenRepositories opens the storage-backed repositories.
func OpenRepositories(s ports.Storage, clearStorage bool) (ports.SharedExternalsRepository, ports.RemoteInfoRepository, error) {
	shared, err := repository.NewSharedExternals(s, clearStorage)
	if err != nil {
		return nil, nil, err
	}
	remotes, err := repository.NewRemoteInfos(s, clearStorage)
	if err != nil {
		return nil, nil, err
	}
	return shared, remotes, nil
}
