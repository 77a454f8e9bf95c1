// Package repository implements the staged, transactional stores on top of the storage port.
package repository

import (
	"encoding/json"
	"maps"
	"sync"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

// ledger is a name keyed mapping persisted as one JSON document in a storage namespace.
// Writes go to a pending buffer and reach storage only on commit.
type ledger[T any] struct {
	storage   ports.Storage
	namespace string
	clone     func(T) T

	mu        sync.RWMutex
	committed map[string]T
	pending   map[string]T
}

func openLedger[T any](storage ports.Storage, namespace string, clearStorage bool, clone func(T) T) (*ledger[T], error) {
	l := &ledger[T]{
		storage:   storage,
		namespace: namespace,
		clone:     clone,
		committed: map[string]T{},
		pending:   map[string]T{},
	}

	if clearStorage {
		if err := storage.Clear(namespace); err != nil {
			return nil, err
		}
		if err := storage.Update(namespace, func([]byte) ([]byte, error) {
			return []byte("{}"), nil
		}); err != nil {
			return nil, err
		}
		return l, nil
	}

	data, err := storage.Fetch(namespace)
	if err != nil {
		return nil, err
	}
	committed, err := decode[T](data, namespace)
	if err != nil {
		return nil, err
	}
	l.committed = committed
	return l, nil
}

func decode[T any](data []byte, namespace string) (map[string]T, error) {
	out := map[string]T{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageUnmarshalFailed.Error()), "namespace", namespace)
	}
	if out == nil {
		out = map[string]T{}
	}
	return out, nil
}

func (l *ledger[T]) get(name string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if v, ok := l.pending[name]; ok {
		return l.clone(v), true
	}
	v, ok := l.committed[name]
	if !ok {
		var zero T
		return zero, false
	}
	return l.clone(v), true
}

func (l *ledger[T]) all() map[string]T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]T, len(l.committed)+len(l.pending))
	for k, v := range l.committed {
		out[k] = l.clone(v)
	}
	for k, v := range l.pending {
		out[k] = l.clone(v)
	}
	return out
}

func (l *ledger[T]) stage(name string, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[name] = l.clone(v)
}

// commit applies the pending buffer to the persisted document in a single update.
// Names not staged keep their persisted value.
func (l *ledger[T]) commit() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var merged map[string]T
	err := l.storage.Update(l.namespace, func(current []byte) ([]byte, error) {
		persisted, err := decode[T](current, l.namespace)
		if err != nil {
			return nil, err
		}
		maps.Copy(persisted, l.pending)

		data, err := json.Marshal(persisted)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStorageMarshalFailed.Error())
		}
		merged = persisted
		return data, nil
	})
	if err != nil {
		return err
	}

	l.committed = merged
	l.pending = map[string]T{}
	return nil
}
