package ports

import (
	"context"

	"go.trai.ch/federate/internal/core/domain"
)

// ManifestProvider loads the manifest listing the remotes.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type ManifestProvider interface {
	// FetchManifest loads the manifest from a URL or a local path.
	FetchManifest(ctx context.Context, location string) (domain.Manifest, error)
}

// RemoteEntryProvider loads remote entry documents.
type RemoteEntryProvider interface {
	// FetchRemoteEntry loads and decodes the remote entry at url.
	FetchRemoteEntry(ctx context.Context, url string) (*domain.RemoteEntry, error)
}
