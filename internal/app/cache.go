package app

import (
	"errors"
	"fmt"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/zerr"
)

// CacheSnapshot is the committed state of the repositories.
type CacheSnapshot struct {
	Shared  domain.SharedExternals `json:"shared"`
	Remotes domain.RemoteInfos     `json:"remotes"`
}

// CacheList returns the committed shared externals and remotes.
func (a *App) CacheList(cfg *domain.Config) (CacheSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	shared, remotes, err := a.openRepositories(cfg)
	if err != nil {
		return CacheSnapshot{}, err
	}
	return CacheSnapshot{Shared: shared.GetAll(), Remotes: remotes.GetAll()}, nil
}

// ClearCache removes every storage namespace.
func (a *App) ClearCache(cfg *domain.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.openStorage(cfg); err != nil {
		return err
	}

	var errs error
	for _, ns := range domain.Namespaces() {
		if err := a.storage.Clear(ns); err != nil {
			errs = errors.Join(errs, zerr.With(err, "namespace", ns))
			continue
		}
		a.logger.Info(fmt.Sprintf("removed %s", ns))
	}
	return errs
}
