// Package fetch loads manifests and remote entries over HTTP or from the local filesystem.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxDocumentSize bounds manifest and remote entry documents.
const maxDocumentSize = 8 << 20

// Client implements ports.ManifestProvider and ports.RemoteEntryProvider.
// Locations with an http or https scheme are requested, file URLs and plain paths are read from disk.
type Client struct {
	http *http.Client
}

// NewClient creates a client using the given HTTP client.
// If hc is nil a client with domain.DefaultFetchTimeout is used.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: domain.DefaultFetchTimeout}
	}
	return &Client{http: hc}
}

// FetchManifest loads the manifest at location.
func (c *Client) FetchManifest(ctx context.Context, location string) (domain.Manifest, error) {
	data, err := c.read(ctx, location)
	if err != nil {
		return nil, err
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "malformed manifest"), "location", location)
	}
	return manifest, nil
}

// FetchRemoteEntry loads and decodes the remote entry at location.
func (c *Client) FetchRemoteEntry(ctx context.Context, location string) (*domain.RemoteEntry, error) {
	data, err := c.read(ctx, location)
	if err != nil {
		return nil, err
	}
	return domain.ParseRemoteEntry(data, location)
}

func (c *Client) read(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return c.get(ctx, location)
	}

	path := location
	if err == nil && u.Scheme == "file" {
		path = u.Path
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	//nolint:gosec // Reading configured manifest and remote entry locations is the purpose of this adapter
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read document"), "path", path)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := readDocument(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build request"), "url", location)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "request failed"), "url", location)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(zerr.New("unexpected status"), "url", location), "status", resp.StatusCode)
	}

	data, err := readDocument(resp.Body)
	if err != nil {
		return nil, zerr.With(err, "url", location)
	}
	return data, nil
}

// readDocument reads r up to maxDocumentSize and fails on anything larger.
func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read document")
	}
	if len(data) > maxDocumentSize {
		return nil, zerr.With(zerr.Wrap(domain.ErrDocumentTooLarge, "document exceeds size limit"), "limit_bytes", maxDocumentSize)
	}
	return data, nil
}
