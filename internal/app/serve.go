package app

import (
	"context"

	"go.trai.ch/federate/internal/adapters/loader" //nolint:depguard // Wired in app layer
	"go.trai.ch/federate/internal/adapters/server" //nolint:depguard // HTTP surface of the serve command
	"go.trai.ch/federate/internal/core/domain"
)

// session binds the HTTP API to one configuration.
type session struct {
	app *App
	cfg *domain.Config
}

func (s *session) ImportMap() (*domain.ImportMap, bool) {
	return s.app.ImportMap()
}

func (s *session) Remotes() (domain.RemoteInfos, error) {
	snapshot, err := s.app.CacheList(s.cfg)
	if err != nil {
		return nil, err
	}
	return snapshot.Remotes, nil
}

func (s *session) Refresh(ctx context.Context) (*domain.ImportMap, error) {
	return s.app.InitFederation(ctx, s.cfg)
}

// Serve runs the pipeline once and serves the import map on cfg.ServeAddr until ctx is done.
// A failing initial run is logged and can be retried through POST /refresh.
func (a *App) Serve(ctx context.Context, cfg *domain.Config) error {
	if _, err := a.InitFederation(ctx, cfg); err != nil {
		a.logger.Error(err)
	}

	s := &session{app: a, cfg: cfg}
	return server.Serve(ctx, cfg.ServeAddr, server.NewRouter(s, a.logger), a.logger)
}

// RenderImportMap encodes m in the given output format.
func RenderImportMap(format domain.OutputFormat, m *domain.ImportMap) ([]byte, error) {
	return loader.Render(format, m)
}
