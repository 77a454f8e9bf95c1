package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/federate/internal/adapters/repository"
	"go.trai.ch/federate/internal/adapters/storage"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports/mocks"
	"go.trai.ch/federate/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

const (
	mfe1URL = "http://localhost:3001/remoteEntry.json"
	mfe2URL = "http://localhost:3002/remoteEntry.json"
)

func remote(name, url string, shared ...domain.SharedInfo) *domain.RemoteEntry {
	return &domain.RemoteEntry{Name: name, URL: url, Exposes: []domain.ExposesInfo{}, Shared: shared}
}

func singleton(pkg, version, rng string) domain.SharedInfo {
	return domain.SharedInfo{
		PackageName:     pkg,
		OutFileName:     pkg + ".js",
		RequiredVersion: rng,
		Singleton:       true,
		StrictVersion:   true,
		Version:         version,
	}
}

func newStore(t *testing.T, seed domain.SharedExternals) *repository.SharedExternals {
	t.Helper()
	store, err := repository.NewSharedExternals(storage.NewMemory(), false)
	require.NoError(t, err)
	for name, entry := range seed {
		store.AddOrUpdate(name, entry)
	}
	require.NoError(t, store.Commit())
	return store
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return log
}

func cachedRxjs() domain.SharedExternals {
	return domain.SharedExternals{
		"rxjs": {Versions: []domain.SharedVersion{{
			Version:         "7.8.1",
			RequiredVersion: "~7.8.0",
			Singleton:       true,
			StrictVersion:   true,
			URL:             "http://localhost:3001/rxjs.js",
		}}},
	}
}

func TestResolve_EmptyCacheSharesGlobally(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	res, err := r.Resolve(remote("team/mfe1", mfe1URL, singleton("rxjs", "7.8.1", "~7.8.0")))
	require.NoError(t, err)

	assert.Equal(t, domain.SharedInfoActions{"rxjs": {Action: domain.ActionShare}}, res.Actions)
	assert.Empty(t, res.Conflicts)

	versions, ok := store.TryGetVersions("rxjs")
	require.True(t, ok)
	require.Len(t, versions, 1)
	assert.Equal(t, "http://localhost:3001/rxjs.js", versions[0].URL)
	assert.True(t, versions[0].Dirty)
	assert.True(t, store.GetAll()["rxjs"].Dirty)
}

func TestResolve_CompatibleNewerVersionKeepsCachedAuthoritative(t *testing.T) {
	store := newStore(t, cachedRxjs())
	r := resolver.New(store, quietLogger(t))

	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.9.0", "^7.8.0")))
	require.NoError(t, err)

	assert.Empty(t, res.Conflicts)
	assert.Equal(t, domain.SharedInfoAction{
		Action:   domain.ActionSkip,
		Override: "http://localhost:3001/rxjs.js",
	}, res.Actions["rxjs"])

	versions, _ := store.TryGetVersions("rxjs")
	require.Len(t, versions, 2)
	assert.Equal(t, "7.9.0", versions[1].Version)
	assert.True(t, versions[1].Dirty)
}

func TestResolve_IncompatibleSingletonIsReportedNotThrown(t *testing.T) {
	store := newStore(t, cachedRxjs())

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	r := resolver.New(store, log)
	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "6.0.0", "^6.0.0")))
	require.NoError(t, err)

	require.Len(t, res.Conflicts, 1)
	c := res.Conflicts[0]
	assert.Equal(t, "rxjs", c.Package)
	assert.Equal(t, "team/mfe2", c.Remote)
	assert.Equal(t, "7.8.1", c.Authoritative)
	assert.Equal(t, "6.0.0", c.Incoming)
	assert.True(t, errors.Is(c, domain.ErrIncompatibleSingleton))

	assert.Equal(t, domain.ActionScope, res.Actions["rxjs"].Action)

	versions, _ := store.TryGetVersions("rxjs")
	require.Len(t, versions, 1, "authoritative version stays alone")
	assert.Equal(t, "7.8.1", versions[0].Version)
}

func TestResolve_IdenticalVersionIsDeduplicated(t *testing.T) {
	store := newStore(t, cachedRxjs())
	r := resolver.New(store, quietLogger(t))

	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.8.1", "~7.8.0")))
	require.NoError(t, err)

	assert.Equal(t, domain.SharedInfoAction{
		Action:   domain.ActionSkip,
		Override: "http://localhost:3001/rxjs.js",
	}, res.Actions["rxjs"])

	r.Confirm()
	require.NoError(t, store.Commit())

	versions, _ := store.TryGetVersions("rxjs")
	assert.Len(t, versions, 1)
}

func TestResolve_SamePassKeepsFirstSingleton(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	_, err := r.Resolve(remote("team/mfe1", mfe1URL, singleton("rxjs", "7.8.1", "~7.8.0")))
	require.NoError(t, err)

	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.9.0", "^7.8.0")))
	require.NoError(t, err)

	assert.Equal(t, domain.SharedInfoAction{
		Action:   domain.ActionSkip,
		Override: "http://localhost:3001/rxjs.js",
	}, res.Actions["rxjs"])
}

func TestResolve_CachedChoiceIsStableAcrossReloads(t *testing.T) {
	store := newStore(t, domain.SharedExternals{
		"rxjs": {Versions: []domain.SharedVersion{
			{Version: "7.8.1", RequiredVersion: "~7.8.0", Singleton: true, URL: "http://localhost:3001/rxjs.js"},
			{Version: "7.9.0", RequiredVersion: "^7.8.0", Singleton: true, URL: "http://localhost:3002/rxjs.js"},
		}},
	})
	r := resolver.New(store, quietLogger(t))

	res, err := r.Resolve(remote("team/mfe1", mfe1URL, singleton("rxjs", "7.8.1", "~7.8.0")))
	require.NoError(t, err)
	assert.Equal(t, domain.SharedInfoAction{Action: domain.ActionShare}, res.Actions["rxjs"])

	res, err = r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.9.0", "^7.8.0")))
	require.NoError(t, err)
	assert.Equal(t, domain.SharedInfoAction{
		Action:   domain.ActionSkip,
		Override: "http://localhost:3001/rxjs.js",
	}, res.Actions["rxjs"])
}

func TestResolve_NonSingletonIsScoped(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	dep := singleton("lodash", "4.17.21", "^4.17.0")
	dep.Singleton = false

	res, err := r.Resolve(remote("team/mfe1", mfe1URL, dep))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionScope, res.Actions["lodash"].Action)

	_, ok := store.TryGetVersions("lodash")
	assert.True(t, ok, "non-singletons are still registered")
}

func TestResolve_NonSingletonDoesNotClaimSingletonSlot(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	scoped := singleton("rxjs", "6.0.0", "^6.0.0")
	scoped.Singleton = false

	res, err := r.Resolve(remote("team/mfe1", mfe1URL, scoped))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionScope, res.Actions["rxjs"].Action)

	res, err = r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.8.1", "^7.8.0")))
	require.NoError(t, err)

	assert.Empty(t, res.Conflicts)
	assert.Equal(t, domain.SharedInfoAction{Action: domain.ActionShare}, res.Actions["rxjs"])

	versions, _ := store.TryGetVersions("rxjs")
	require.Len(t, versions, 2)
	assert.False(t, versions[0].Singleton)
	assert.Equal(t, "http://localhost:3002/rxjs.js", versions[1].URL)
}

func TestResolve_SingletonTakesOverScopedRecordOfSameVersion(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	scoped := singleton("rxjs", "7.8.1", "~7.8.0")
	scoped.Singleton = false

	_, err := r.Resolve(remote("team/mfe1", mfe1URL, scoped))
	require.NoError(t, err)

	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.8.1", "^7.8.0")))
	require.NoError(t, err)

	assert.Empty(t, res.Conflicts)
	assert.Equal(t, domain.SharedInfoAction{Action: domain.ActionShare}, res.Actions["rxjs"])

	versions, _ := store.TryGetVersions("rxjs")
	require.Len(t, versions, 1)
	assert.True(t, versions[0].Singleton)
	assert.Equal(t, "http://localhost:3002/rxjs.js", versions[0].URL)
}

func TestResolve_NonSingletonConflictsWithChosenSingleton(t *testing.T) {
	store := newStore(t, cachedRxjs())

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	scoped := singleton("rxjs", "6.0.0", "^6.0.0")
	scoped.Singleton = false

	res, err := resolver.New(store, log).Resolve(remote("team/mfe2", mfe2URL, scoped))
	require.NoError(t, err)

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "7.8.1", res.Conflicts[0].Authoritative)
	assert.Equal(t, domain.ActionScope, res.Actions["rxjs"].Action)
}

func TestResolve_FallsBackToLatestSatisfyingKnownVersion(t *testing.T) {
	store := newStore(t, domain.SharedExternals{
		"rxjs": {Versions: []domain.SharedVersion{
			{Version: "6.4.0", RequiredVersion: "^6.0.0", Singleton: true, URL: "http://localhost:3005/rxjs.js"},
			{Version: "7.8.1", RequiredVersion: "~7.8.0", Singleton: true, URL: "http://localhost:3001/rxjs.js"},
		}},
	})
	r := resolver.New(store, quietLogger(t))

	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "6.4.0", "^6.0.0")))
	require.NoError(t, err)

	assert.Empty(t, res.Conflicts)
	assert.Equal(t, domain.SharedInfoAction{
		Action:   domain.ActionSkip,
		Override: "http://localhost:3005/rxjs.js",
	}, res.Actions["rxjs"])
}

func TestResolve_UnresolvableVersionIsFatal(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	_, err := r.Resolve(remote("team/mfe1", mfe1URL, singleton("rxjs", "1.0.0", "^2.0.0")))
	require.ErrorIs(t, err, domain.ErrUnresolvableVersion)
	assert.ErrorContains(t, err, "no known version satisfies range")
}

func TestResolve_MalformedDeclarationsAreFatal(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t))

	_, err := r.Resolve(remote("team/mfe1", mfe1URL, singleton("rxjs", "seven", "^7.0.0")))
	require.ErrorIs(t, err, domain.ErrInvalidVersion)

	_, err = r.Resolve(remote("team/mfe1", mfe1URL, singleton("rxjs", "7.0.0", "^seven")))
	require.ErrorIs(t, err, domain.ErrInvalidVersionRange)
}

func TestResolve_EmptyRangeMeansExactVersion(t *testing.T) {
	store := newStore(t, cachedRxjs())
	r := resolver.New(store, quietLogger(t))

	res, err := r.Resolve(remote("team/mfe2", mfe2URL, singleton("rxjs", "7.8.1", "")))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSkip, res.Actions["rxjs"].Action)
}

func TestResolve_PolicyOverridesDecision(t *testing.T) {
	store := newStore(t, nil)
	r := resolver.New(store, quietLogger(t), resolver.WithPolicy(domain.SharedInfoActions{
		"rxjs": {Action: domain.ActionScope},
	}))

	res, err := r.Resolve(remote("team/mfe1", mfe1URL,
		singleton("rxjs", "7.8.1", "~7.8.0"),
		singleton("tslib", "2.8.1", "^2.3.0"),
	))
	require.NoError(t, err)

	assert.Equal(t, domain.ActionScope, res.Actions["rxjs"].Action)
	assert.Equal(t, domain.ActionShare, res.Actions["tslib"].Action)
}

func TestConfirm_ClearsDirtyFlags(t *testing.T) {
	store := newStore(t, cachedRxjs())
	r := resolver.New(store, quietLogger(t))

	_, err := r.Resolve(remote("team/mfe2", mfe2URL,
		singleton("rxjs", "7.9.0", "^7.8.0"),
		singleton("tslib", "2.8.1", "^2.3.0"),
	))
	require.NoError(t, err)

	r.Confirm()

	for name, entry := range store.GetAll() {
		assert.False(t, entry.Dirty, name)
		for _, v := range entry.Versions {
			assert.False(t, v.Dirty, name+"@"+v.Version)
		}
	}
}
