package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/federate/internal/engine/importmap"
	"go.trai.ch/federate/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Stage is a state of the federation pipeline.
type Stage uint8

// Pipeline stages in the order they are reached.
const (
	StageStart Stage = iota
	StageManifestFetched
	StageRemoteEntriesFetched
	StageVersionsResolved
	StageImportMapBuilt
	StageExposed
)

// String returns the span name of the transition that reaches the stage.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageManifestFetched:
		return "fetch-manifest"
	case StageRemoteEntriesFetched:
		return "fetch-remote-entries"
	case StageVersionsResolved:
		return "resolve-versions"
	case StageImportMapBuilt:
		return "build-import-map"
	case StageExposed:
		return "expose"
	default:
		return "unknown"
	}
}

// maxConcurrentFetches bounds the remote entry requests in flight.
const maxConcurrentFetches = 8

// federation is the state of a single pipeline run.
type federation struct {
	app *App
	cfg *domain.Config

	stage    Stage
	manifest domain.Manifest
	host     string

	shared  ports.SharedExternalsRepository
	remotes ports.RemoteInfoRepository

	entries  []*domain.RemoteEntry
	cached   []string
	resolver *resolver.Resolver
	actions  []domain.SharedInfoActions

	importMap *domain.ImportMap
}

// InitFederation runs the pipeline to the exposed stage and returns the exposed import map.
// Runs are serialized. The repositories are committed only after the map is exposed and written,
// so a failing stage leaves both the cache and the exposed map untouched.
func (a *App) InitFederation(ctx context.Context, cfg *domain.Config) (*domain.ImportMap, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := &federation{app: a, cfg: cfg}
	if err := f.run(ctx); err != nil {
		return nil, errors.Join(domain.ErrFederationInitFailed, err)
	}
	return f.importMap.Clone(), nil
}

func (f *federation) run(ctx context.Context) error {
	ctx, span := f.app.tracer.Start(ctx, "init-federation")
	defer span.End()

	for f.stage != StageExposed {
		next := f.stage + 1
		stageCtx, stageSpan := f.app.tracer.Start(ctx, next.String())
		err := f.transition(stageCtx)
		stageSpan.RecordError(err)
		stageSpan.End()
		if err != nil {
			span.RecordError(err)
			return err
		}
		f.stage = next
	}

	span.SetAttribute("remotes", len(f.entries))
	span.SetAttribute("imports", len(f.importMap.Imports))
	return nil
}

func (f *federation) transition(ctx context.Context) error {
	switch f.stage {
	case StageStart:
		return f.fetchManifest(ctx)
	case StageManifestFetched:
		return f.fetchRemoteEntries(ctx)
	case StageRemoteEntriesFetched:
		return f.resolveVersions()
	case StageVersionsResolved:
		return f.buildImportMap()
	case StageImportMapBuilt:
		return f.expose(ctx)
	default:
		return zerr.With(zerr.New("no transition from stage"), "stage", f.stage.String())
	}
}

func (f *federation) fetchManifest(ctx context.Context) error {
	manifest := domain.Manifest{}

	if loc := f.cfg.ManifestLocation; loc != "" {
		fetchCtx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
		defer cancel()

		fetched, err := f.app.manifests.FetchManifest(fetchCtx, locate(f.cfg.Root, loc))
		if err != nil {
			return errors.Join(domain.ErrManifestFetch, zerr.With(err, "location", loc))
		}
		manifest = fetched
	}

	for _, remote := range f.cfg.Remotes {
		manifest = manifest.With(remote.Name, remote.URL)
	}

	if host := f.cfg.Host; host != nil {
		f.host = hostName(host)
		manifest = manifest.With(f.host, domain.WithCacheTag(host.URL, host.CacheTag))
	}

	if len(manifest) == 0 && f.cfg.ManifestLocation == "" {
		return domain.ErrNoManifest
	}

	f.manifest = manifest
	f.app.logger.Debug(fmt.Sprintf("Manifest lists %d remotes.", len(manifest)))
	return nil
}

func (f *federation) fetchRemoteEntries(ctx context.Context) error {
	shared, remotes, err := f.app.openRepositories(f.cfg)
	if err != nil {
		return err
	}
	f.shared, f.remotes = shared, remotes

	results := make([]*domain.RemoteEntry, len(f.manifest))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, remote := range f.manifest {
		if f.cfg.SkipCachedRemotes && remote.Name != f.host && f.remotes.Contains(remote.Name) {
			f.app.logger.Debug(fmt.Sprintf("[%s] Remote is cached, skipping fetch.", remote.Name))
			f.cached = append(f.cached, remote.Name)
			continue
		}

		g.Go(func() error {
			entry, err := f.fetchRemoteEntry(gctx, remote)
			if err == nil {
				results[i] = entry
				return nil
			}
			if f.cfg.Strict {
				return errors.Join(domain.ErrRemoteEntryFetch, err)
			}
			f.app.logger.Warn(fmt.Sprintf("[%s] Could not fetch remote entry, skipping remote: %v", remote.Name, err))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, entry := range results {
		if entry != nil {
			f.entries = append(f.entries, entry)
		}
	}
	return nil
}

func (f *federation) fetchRemoteEntry(ctx context.Context, remote domain.ManifestEntry) (*domain.RemoteEntry, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()

	entry, err := f.app.entries.FetchRemoteEntry(fetchCtx, locate(f.cfg.Root, remote.URL))
	if err != nil {
		return nil, zerr.With(zerr.With(err, "remote", remote.Name), "url", remote.URL)
	}

	// Scopes derive from the configured location, not the resolved path.
	entry.URL = remote.URL

	if remote.Name == f.host {
		entry.Host = true
		entry.Name = remote.Name
		return entry, nil
	}

	if entry.Name != remote.Name {
		f.app.logger.Warn(fmt.Sprintf(
			"[%s] Remote entry declares name '%s', using the manifest name.", remote.Name, entry.Name))
		entry.Name = remote.Name
	}
	return entry, nil
}

func (f *federation) resolveVersions() error {
	f.resolver = resolver.New(f.shared, f.app.logger, resolver.WithPolicy(f.cfg.Sharing))
	f.actions = make([]domain.SharedInfoActions, len(f.entries))

	for i, entry := range f.entries {
		result, err := f.resolver.Resolve(entry)
		if err != nil {
			return err
		}
		f.actions[i] = result.Actions
		f.remotes.AddOrUpdate(entry.Name, domain.NewRemoteInfo(entry))
	}
	return nil
}

func (f *federation) buildImportMap() error {
	builder := importmap.NewBuilder(f.app.logger)
	merged := domain.NewImportMap()

	for i, entry := range f.entries {
		fragment, err := builder.Build(entry, f.actions[i])
		if err != nil {
			return err
		}
		merged.Merge(fragment)
	}

	f.addCachedRemotes(merged)
	f.addSkipOverrides(merged)

	f.importMap = merged
	return nil
}

// addCachedRemotes maps the exposed modules of remotes that were not refetched.
func (f *federation) addCachedRemotes(m *domain.ImportMap) {
	for _, name := range f.cached {
		info, ok := f.remotes.TryGet(name)
		if !ok {
			continue
		}
		for _, exposed := range info.Exposes {
			m.AddImport(domain.JoinURL(name, exposed.ModuleName), exposed.URL)
		}
	}
}

// addSkipOverrides publishes the bound copy of a skipped singleton globally
// when no remote of this run shares it, which happens when its owner was not refetched.
func (f *federation) addSkipOverrides(m *domain.ImportMap) {
	for _, actions := range f.actions {
		for pkg, action := range actions {
			if action.Action != domain.ActionSkip || action.Override == "" {
				continue
			}
			if _, ok := m.Imports[pkg]; !ok {
				m.AddImport(pkg, action.Override)
			}
		}
	}
}

func (f *federation) expose(ctx context.Context) error {
	if current, ok := f.app.ImportMap(); ok && current.Digest() == f.importMap.Digest() {
		f.app.logger.Debug("Import map unchanged, skipping expose.")
		return f.commit()
	}

	if err := f.app.loader.Expose(ctx, f.importMap); err != nil {
		return err
	}

	if f.cfg.Output.WritesFile() {
		out := f.cfg.Output
		out.Path = outputPath(f.cfg)
		if err := f.app.writer.Write(out, f.importMap); err != nil {
			return err
		}
	}

	if err := f.commit(); err != nil {
		return err
	}

	f.app.setExposed(f.importMap.Clone())
	f.app.logger.Info(fmt.Sprintf("Federation initialized: %d remotes, %s.", len(f.entries)+len(f.cached), describeMap(f.importMap)))
	return nil
}

// commit confirms the staged shared externals and persists both repositories.
// Shared externals are committed first, so a failing remotes commit leaves them persisted.
func (f *federation) commit() error {
	f.resolver.Confirm()
	if err := f.shared.Commit(); err != nil {
		return err
	}
	return f.remotes.Commit()
}
