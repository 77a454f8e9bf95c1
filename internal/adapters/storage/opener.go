package storage

import (
	"path/filepath"
	"sync"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.StorageOpener.
// The memory backend is shared by every Open call of the same Opener.
type Opener struct {
	mu     sync.Mutex
	memory *Memory
}

// NewOpener creates a new storage opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the backend selected by cfg. Relative paths are resolved against root.
func (o *Opener) Open(root string, cfg domain.StorageConfig) (ports.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case domain.StorageMemory:
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.memory == nil {
			o.memory = NewMemory()
		}
		return o.memory, noop, nil

	case domain.StorageFile, "":
		return NewFile(resolvePath(root, cfg.Path, domain.DefaultStorePath())), noop, nil

	case domain.StorageSQLite:
		db, err := OpenSQLite(resolvePath(root, cfg.Path, domain.DefaultSQLitePath()))
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil

	default:
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrUnknownStorageDriver, "cannot open storage"), "driver", string(cfg.Driver))
	}
}

func resolvePath(root, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
