// Package storage implements the namespaced persistence port.
package storage

import (
	"slices"
	"sync"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/zerr"
)

// Memory implements ports.Storage in process memory.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Fetch returns a copy of the document stored under namespace.
func (m *Memory) Fetch(namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.data[namespace]), nil
}

// Update replaces the document under namespace with the result of fn.
func (m *Memory) Update(namespace string, fn func([]byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(slices.Clone(m.data[namespace]))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}
	m.data[namespace] = slices.Clone(next)
	return nil
}

// Clear removes the document under namespace.
func (m *Memory) Clear(namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}
