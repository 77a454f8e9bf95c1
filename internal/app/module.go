package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/engine/importmap"
	"go.trai.ch/federate/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// ModuleRequest names an exposed module of a remote.
type ModuleRequest struct {
	RemoteName    string
	ExposedModule string
	// RemoteEntry is an optional entry URL used when the remote is unknown or moved.
	RemoteEntry string
}

// LoadRemoteModule returns the URL the module loader resolves for an exposed module.
// A remote entry given in the request is fetched and added to the exposed import map first.
func (a *App) LoadRemoteModule(ctx context.Context, cfg *domain.Config, req ModuleRequest) (string, error) {
	if strings.TrimSpace(req.RemoteName) == "" {
		return "", domain.ErrEmptyRemoteName
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.logger.Debug(fmt.Sprintf("Loading module '%s' of remote '%s'.", req.ExposedModule, req.RemoteName))

	info, err := a.remoteInfo(ctx, cfg, req)
	if err != nil {
		return "", err
	}

	key, ok := exposedKey(info, req.ExposedModule)
	if !ok {
		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrUnexposedModule, "cannot load remote module"),
			"remote", req.RemoteName), "module", req.ExposedModule)
	}

	url, err := a.loader.Import(ctx, domain.JoinURL(req.RemoteName, key))
	if err != nil {
		return "", zerr.With(err, "remote", req.RemoteName)
	}
	a.logger.Debug("Importing module: " + url)
	return url, nil
}

// remoteInfo returns the info of the requested remote, registering it from its entry when needed.
// The caller must hold a.mu.
func (a *App) remoteInfo(ctx context.Context, cfg *domain.Config, req ModuleRequest) (domain.RemoteInfo, error) {
	shared, remotes, err := a.openRepositories(cfg)
	if err != nil {
		return domain.RemoteInfo{}, err
	}

	info, known := remotes.TryGet(req.RemoteName)
	if req.RemoteEntry == "" || (known && info.ScopeURL == domain.ToScope(req.RemoteEntry)) {
		if !known {
			return domain.RemoteInfo{}, zerr.With(zerr.Wrap(domain.ErrRemoteNotFound, "provide a remote entry url"), "remote", req.RemoteName)
		}
		return info, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	entry, err := a.entries.FetchRemoteEntry(fetchCtx, locate(cfg.Root, req.RemoteEntry))
	if err != nil {
		return domain.RemoteInfo{}, errors.Join(domain.ErrRemoteEntryFetch, zerr.With(err, "remote", req.RemoteName))
	}
	entry.URL = req.RemoteEntry
	entry.Name = req.RemoteName

	res := resolver.New(shared, a.logger, resolver.WithPolicy(cfg.Sharing))
	result, err := res.Resolve(entry)
	if err != nil {
		return domain.RemoteInfo{}, err
	}
	fragment, err := importmap.NewBuilder(a.logger).Build(entry, result.Actions)
	if err != nil {
		return domain.RemoteInfo{}, err
	}

	merged := domain.NewImportMap()
	if current, ok := a.ImportMap(); ok {
		merged = current
	}
	merged.Merge(fragment)

	info = domain.NewRemoteInfo(entry)
	remotes.AddOrUpdate(req.RemoteName, info)
	if err := a.loader.Expose(ctx, merged); err != nil {
		return domain.RemoteInfo{}, err
	}

	res.Confirm()
	if err := shared.Commit(); err != nil {
		return domain.RemoteInfo{}, err
	}
	if err := remotes.Commit(); err != nil {
		return domain.RemoteInfo{}, err
	}
	a.setExposed(merged)
	return info, nil
}

// exposedKey matches the requested module against the exposed keys, with or without a leading "./".
func exposedKey(info domain.RemoteInfo, module string) (string, bool) {
	candidates := []string{module}
	if strings.HasPrefix(module, "./") {
		candidates = append(candidates, strings.TrimPrefix(module, "./"))
	} else {
		candidates = append(candidates, "./"+module)
	}
	for _, c := range candidates {
		if _, ok := info.Module(c); ok {
			return c, true
		}
	}
	return "", false
}
