// Package resolver decides which physical copy of each shared dependency a remote binds to.
package resolver

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Conflict is an incompatible singleton declaration.
// It is reported, never returned as an error, and leaves the authoritative version in place.
type Conflict struct {
	Remote        string
	Package       string
	Authoritative string
	Incoming      string
	Range         string
	StrictVersion bool
}

// Error describes the conflict.
func (c Conflict) Error() string {
	return fmt.Sprintf("%s: %s@%s (%s) from %s does not accept %s@%s",
		domain.ErrIncompatibleSingleton.Error(), c.Package, c.Incoming, c.Range, c.Remote, c.Package, c.Authoritative)
}

// Unwrap returns domain.ErrIncompatibleSingleton.
func (c Conflict) Unwrap() error {
	return domain.ErrIncompatibleSingleton
}

// Result is the outcome of resolving one remote entry.
type Result struct {
	Actions   domain.SharedInfoActions
	Conflicts []Conflict
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy overrides the resolver's decision for the listed packages.
func WithPolicy(policy domain.SharedInfoActions) Option {
	return func(r *Resolver) {
		r.policy = policy
	}
}

// Resolver implements the version resolution pass over the shared externals store.
// It stages into the store and never commits.
type Resolver struct {
	store  ports.SharedExternalsRepository
	logger ports.Logger
	policy domain.SharedInfoActions
	staged map[string]struct{}
}

// New creates a resolver for one pass over the given store.
func New(store ports.SharedExternalsRepository, logger ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		logger: logger,
		staged: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve registers the shared dependencies of entry and decides an action for each of them.
// An unresolvable or malformed declaration aborts the pass.
func (r *Resolver) Resolve(entry *domain.RemoteEntry) (Result, error) {
	result := Result{Actions: make(domain.SharedInfoActions, len(entry.Shared))}
	scope := domain.ToScope(entry.URL)

	for _, shared := range entry.Shared {
		incoming := domain.SharedVersion{
			Version:         shared.Version,
			RequiredVersion: shared.RequiredVersion,
			StrictVersion:   shared.StrictVersion,
			Singleton:       shared.Singleton,
			URL:             domain.JoinURL(scope, shared.OutFileName),
			Dirty:           true,
		}

		action, conflict, err := r.resolveOne(entry.Name, shared.PackageName, incoming)
		if err != nil {
			return Result{}, err
		}
		if conflict != nil {
			result.Conflicts = append(result.Conflicts, *conflict)
		}

		if override, ok := r.policy[shared.PackageName]; ok && override.Action != domain.ActionNone {
			r.logger.Debug(fmt.Sprintf("[%s] Sharing policy sets '%s' to %s.", entry.Name, shared.PackageName, override.Action))
			action = override
		}
		result.Actions[shared.PackageName] = action
	}

	return result, nil
}

func (r *Resolver) resolveOne(remote, pkg string, incoming domain.SharedVersion) (domain.SharedInfoAction, *Conflict, error) {
	if _, err := domain.ParseVersion(incoming.Version); err != nil {
		return domain.SharedInfoAction{}, nil, zerr.With(zerr.With(err, "package", pkg), "remote", remote)
	}
	rng, err := domain.ParseRange(incoming.Range())
	if err != nil {
		return domain.SharedInfoAction{}, nil, zerr.With(zerr.With(err, "package", pkg), "remote", remote)
	}

	versions, ok := r.store.TryGetVersions(pkg)
	if !ok {
		r.stage(pkg, []domain.SharedVersion{incoming})
		return r.bind(remote, pkg, rng, incoming, []domain.SharedVersion{incoming})
	}

	i, exists := find(versions, incoming.Version)
	switch {
	case exists && incoming.Singleton && !versions[i].Singleton:
		versions = slices.Clone(versions)
		versions[i] = incoming
		r.stage(pkg, versions)
	case !exists:
		auth, parsed, found, err := authoritative(versions)
		if err != nil {
			return domain.SharedInfoAction{}, nil, zerr.With(err, "package", pkg)
		}
		if found && !rng.Contains(parsed) {
			c := &Conflict{
				Remote:        remote,
				Package:       pkg,
				Authoritative: auth.Version,
				Incoming:      incoming.Version,
				Range:         incoming.Range(),
				StrictVersion: incoming.StrictVersion,
			}
			r.logger.Warn(fmt.Sprintf(
				"[%s] Shared singleton '%s@%s' (%s) is incompatible with '%s@%s', scoping it to the remote.",
				remote, pkg, incoming.Version, incoming.Range(), pkg, auth.Version))
			return domain.SharedInfoAction{Action: domain.ActionScope}, c, nil
		}

		versions = append(versions, incoming)
		r.stage(pkg, versions)
	}

	return r.bind(remote, pkg, rng, incoming, versions)
}

// bind picks the record the remote uses and derives its action.
// Non-singletons are always scoped to their remote.
func (r *Resolver) bind(remote, pkg string, rng domain.Range, incoming domain.SharedVersion, versions []domain.SharedVersion) (domain.SharedInfoAction, *Conflict, error) {
	if !incoming.Singleton {
		return domain.SharedInfoAction{Action: domain.ActionScope}, nil, nil
	}

	bound, ok, err := pickBinding(versions, rng)
	if err != nil {
		return domain.SharedInfoAction{}, nil, zerr.With(err, "package", pkg)
	}
	if !ok {
		return domain.SharedInfoAction{}, nil, zerr.With(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrUnresolvableVersion, "no known version satisfies range"),
			"package", pkg), "range", rng.String()), "remote", remote)
	}

	if bound.URL == incoming.URL {
		return domain.SharedInfoAction{Action: domain.ActionShare}, nil, nil
	}
	return domain.SharedInfoAction{Action: domain.ActionSkip, Override: bound.URL}, nil, nil
}

// Confirm clears the dirty flags of every entry staged in this pass.
func (r *Resolver) Confirm() {
	for _, name := range slices.Sorted(maps.Keys(r.staged)) {
		versions, ok := r.store.TryGetVersions(name)
		if !ok {
			continue
		}
		r.store.AddOrUpdate(name, domain.SharedExternal{Versions: versions}.Confirmed())
	}
	clear(r.staged)
}

func (r *Resolver) stage(pkg string, versions []domain.SharedVersion) {
	r.store.AddOrUpdate(pkg, domain.SharedExternal{Dirty: true, Versions: versions})
	r.staged[pkg] = struct{}{}
}
