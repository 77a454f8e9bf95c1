// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/federate/internal/adapters/config"
	_ "go.trai.ch/federate/internal/adapters/fetch"
	_ "go.trai.ch/federate/internal/adapters/loader"
	_ "go.trai.ch/federate/internal/adapters/logger"
	_ "go.trai.ch/federate/internal/adapters/storage"
	_ "go.trai.ch/federate/internal/adapters/telemetry"
	_ "go.trai.ch/federate/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/federate/internal/app"
)
