package repository

import (
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
)

// SharedExternals implements ports.SharedExternalsRepository.
type SharedExternals struct {
	ledger *ledger[domain.SharedExternal]
}

// NewSharedExternals opens the shared externals namespace of storage.
// With clearStorage the namespace is wiped and an empty mapping is written.
func NewSharedExternals(storage ports.Storage, clearStorage bool) (*SharedExternals, error) {
	l, err := openLedger(storage, domain.SharedExternalsNamespace, clearStorage, domain.SharedExternal.Clone)
	if err != nil {
		return nil, err
	}
	return &SharedExternals{ledger: l}, nil
}

// GetAll returns the committed state merged with the pending buffer.
func (r *SharedExternals) GetAll() domain.SharedExternals {
	return r.ledger.all()
}

// TryGetVersions returns the versions of a package, false if it was never registered.
func (r *SharedExternals) TryGetVersions(name string) ([]domain.SharedVersion, bool) {
	entry, ok := r.ledger.get(name)
	if !ok {
		return nil, false
	}
	if entry.Versions == nil {
		entry.Versions = []domain.SharedVersion{}
	}
	return entry.Versions, true
}

// AddOrUpdate stages a full replacement of the entry.
func (r *SharedExternals) AddOrUpdate(name string, entry domain.SharedExternal) ports.SharedExternalsRepository {
	r.ledger.stage(name, entry)
	return r
}

// Commit writes the pending buffer to storage.
func (r *SharedExternals) Commit() error {
	return r.ledger.commit()
}
