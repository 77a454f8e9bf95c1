package ports

import "go.trai.ch/federate/internal/core/domain"

// Storage defines the persistence port for namespaced opaque documents.
//
//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type Storage interface {
	// Fetch returns the document stored under namespace.
	// Returns nil, nil if nothing was stored.
	Fetch(namespace string) ([]byte, error)

	// Update replaces the document under namespace with the result of fn.
	// fn receives the current document, nil if absent.
	Update(namespace string, fn func(current []byte) ([]byte, error)) error

	// Clear removes the document under namespace.
	Clear(namespace string) error
}

// StorageOpener opens the persistence backend selected by the configuration.
type StorageOpener interface {
	// Open returns the storage rooted at root and a function releasing it.
	Open(root string, cfg domain.StorageConfig) (Storage, func() error, error)
}
