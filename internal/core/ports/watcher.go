package ports

import (
	"context"
	"iter"
)

// WatchEvent is a change of a watched file.
type WatchEvent struct {
	// Path is the absolute path of the file that changed.
	Path string
}

// Watcher defines the interface for watching configuration and manifest files.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files.
	Start(ctx context.Context, paths []string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of debounced change events.
	Events() iter.Seq[WatchEvent]
}

// WatcherFactory creates a fresh watcher per watch session.
type WatcherFactory func() (Watcher, error)
