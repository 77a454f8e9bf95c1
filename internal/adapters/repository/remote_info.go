package repository

import (
	"slices"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
)

// RemoteInfos implements ports.RemoteInfoRepository.
type RemoteInfos struct {
	ledger *ledger[domain.RemoteInfo]
}

// NewRemoteInfos opens the remotes namespace of storage.
func NewRemoteInfos(storage ports.Storage, clearStorage bool) (*RemoteInfos, error) {
	l, err := openLedger(storage, domain.RemotesNamespace, clearStorage, cloneRemoteInfo)
	if err != nil {
		return nil, err
	}
	return &RemoteInfos{ledger: l}, nil
}

func cloneRemoteInfo(info domain.RemoteInfo) domain.RemoteInfo {
	info.Exposes = slices.Clone(info.Exposes)
	return info
}

// Contains reports whether the remote is known.
func (r *RemoteInfos) Contains(name string) bool {
	_, ok := r.ledger.get(name)
	return ok
}

// TryGet returns the info of a remote.
func (r *RemoteInfos) TryGet(name string) (domain.RemoteInfo, bool) {
	return r.ledger.get(name)
}

// GetAll returns the committed state merged with the pending buffer.
func (r *RemoteInfos) GetAll() domain.RemoteInfos {
	return r.ledger.all()
}

// AddOrUpdate stages the info of a remote.
func (r *RemoteInfos) AddOrUpdate(name string, info domain.RemoteInfo) ports.RemoteInfoRepository {
	r.ledger.stage(name, info)
	return r
}

// Commit writes the pending buffer to storage.
func (r *RemoteInfos) Commit() error {
	return r.ledger.commit()
}
