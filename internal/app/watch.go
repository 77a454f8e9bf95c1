package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch runs the pipeline, then reruns it whenever the config file or a local
// manifest or remote entry changes. Failed runs are logged and watching continues.
// It returns when ctx is done.
func (a *App) Watch(ctx context.Context, cwd string, overrides Overrides) error {
	cfg, err := a.LoadConfig(cwd, overrides)
	if err != nil {
		return err
	}

	if _, err := a.InitFederation(ctx, cfg); err != nil {
		a.logger.Error(err)
	}

	paths := watchedPaths(cfg)
	if len(paths) == 0 {
		return zerr.Wrap(domain.ErrNoManifest, "nothing to watch")
	}

	w, err := a.watchers()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	if err := w.Start(ctx, paths); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("Watching %d files for changes.", len(paths)))

	for event := range w.Events() {
		a.logger.Info(fmt.Sprintf("Change detected in %s, reloading.", event.Path))

		next, err := a.LoadConfig(cwd, overrides)
		if err != nil {
			a.logger.Error(err)
			continue
		}
		if _, err := a.InitFederation(ctx, next); err != nil {
			a.logger.Error(err)
		}
	}

	return nil
}

// watchedPaths lists the local files the pipeline of cfg reads.
func watchedPaths(cfg *domain.Config) []string {
	seen := make(map[string]struct{})
	var paths []string
	add := func(location string) {
		if location == "" || !isLocal(location) {
			return
		}
		location = strings.TrimPrefix(location, "file://")
		if i := strings.IndexAny(location, "?#"); i >= 0 {
			location = location[:i]
		}
		path := locate(cfg.Root, location)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	configPath := filepath.Join(cfg.Root, domain.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		add(configPath)
	}
	add(cfg.ManifestLocation)
	for _, remote := range cfg.Remotes {
		add(remote.URL)
	}
	if cfg.Host != nil {
		add(cfg.Host.URL)
	}
	return paths
}
