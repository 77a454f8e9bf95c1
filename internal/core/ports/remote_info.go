package ports

import "go.trai.ch/federate/internal/core/domain"

// RemoteInfoRepository is the transactional store of loaded remotes.
//
//go:generate mockgen -source=remote_info.go -destination=mocks/mock_remote_info.go -package=mocks
type RemoteInfoRepository interface {
	// Contains reports whether the remote is known.
	Contains(name string) bool

	// TryGet returns the info of a remote.
	TryGet(name string) (domain.RemoteInfo, bool)

	// GetAll returns the committed state merged with the pending buffer.
	GetAll() domain.RemoteInfos

	// AddOrUpdate stages the info of a remote and returns the repository for chaining.
	AddOrUpdate(name string, info domain.RemoteInfo) RemoteInfoRepository

	// Commit writes the pending buffer to storage in one update.
	Commit() error
}
