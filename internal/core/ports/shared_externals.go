package ports

import "go.trai.ch/federate/internal/core/domain"

// SharedExternalsRepository is the transactional store of shared externals.
// Writes are staged in a pending buffer until Commit.
//
//go:generate mockgen -source=shared_externals.go -destination=mocks/mock_shared_externals.go -package=mocks
type SharedExternalsRepository interface {
	// GetAll returns the committed state merged with the pending buffer.
	GetAll() domain.SharedExternals

	// TryGetVersions returns the versions of a package.
	// The boolean is false when the package was never registered.
	TryGetVersions(name string) ([]domain.SharedVersion, bool)

	// AddOrUpdate stages a full replacement of the entry and returns the repository for chaining.
	AddOrUpdate(name string, entry domain.SharedExternal) SharedExternalsRepository

	// Commit writes the pending buffer to storage in one update.
	Commit() error
}
