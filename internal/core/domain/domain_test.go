package domain_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/federate/internal/core/domain"
)

func TestToScope(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "strips remote entry", url: "http://localhost:3001/remoteEntry.json", want: "http://localhost:3001/"},
		{name: "strips query", url: "http://localhost:3001/remoteEntry.json?t=1", want: "http://localhost:3001/"},
		{name: "adds trailing slash", url: "http://cdn.example.com/mfe1", want: "http://cdn.example.com/mfe1/"},
		{name: "keeps trailing slash", url: "http://cdn.example.com/mfe1/", want: "http://cdn.example.com/mfe1/"},
		{name: "global passes through", url: "global", want: "global"},
		{name: "relative entry", url: "./remoteEntry.json", want: "./"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ToScope(tt.url))
		})
	}
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3001/rxjs.js", domain.JoinURL("http://localhost:3001/", "rxjs.js"))
	assert.Equal(t, "http://localhost:3001/rxjs.js", domain.JoinURL("http://localhost:3001", "/rxjs.js"))
	assert.Equal(t, "team/mfe1/comp", domain.JoinURL("team/mfe1", "./comp"))
	assert.Equal(t, "comp.js", domain.JoinURL("", "comp.js"))
	assert.Equal(t, "http://a", domain.JoinURL("http://a/", ""))
}

func TestWithCacheTag(t *testing.T) {
	assert.Equal(t, "./remoteEntry.json?t=123", domain.WithCacheTag("./remoteEntry.json", "123"))
	assert.Equal(t, "http://h/remoteEntry.json?a=1&t=7", domain.WithCacheTag("http://h/remoteEntry.json?a=1", "7"))
	assert.Equal(t, "./remoteEntry.json", domain.WithCacheTag("./remoteEntry.json", ""))
}

func TestImportMap_MergeAndDigest(t *testing.T) {
	a := domain.NewImportMap()
	a.AddImport("rxjs", "http://localhost:3001/rxjs.js")
	a.AddScoped("http://localhost:3001/", "tslib", "http://localhost:3001/tslib.js")

	b := domain.NewImportMap()
	b.AddImport("team/mfe2/comp", "http://localhost:3002/comp.js")
	b.AddScoped("http://localhost:3002/", "tslib", "http://localhost:3002/tslib.js")

	merged := domain.NewImportMap()
	merged.Merge(a)
	merged.Merge(b)

	want := &domain.ImportMap{
		Imports: map[string]string{
			"rxjs":           "http://localhost:3001/rxjs.js",
			"team/mfe2/comp": "http://localhost:3002/comp.js",
		},
		Scopes: map[string]map[string]string{
			"http://localhost:3001/": {"tslib": "http://localhost:3001/tslib.js"},
			"http://localhost:3002/": {"tslib": "http://localhost:3002/tslib.js"},
		},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Errorf("merged import map mismatch (-want +got):\n%s", diff)
	}

	reversed := domain.NewImportMap()
	reversed.Merge(b)
	reversed.Merge(a)
	assert.Equal(t, merged.Digest(), reversed.Digest())

	reversed.AddImport("extra", "http://x/extra.js")
	assert.NotEqual(t, merged.Digest(), reversed.Digest())

	clone := merged.Clone()
	clone.AddImport("rxjs", "http://other/rxjs.js")
	assert.Equal(t, "http://localhost:3001/rxjs.js", merged.Imports["rxjs"])
}

func TestImportMap_Resolve(t *testing.T) {
	m := domain.NewImportMap()
	m.AddImport("rxjs", "http://localhost:3001/rxjs.js")
	m.AddScoped("http://localhost:3002/", "rxjs", "http://localhost:3002/rxjs.js")
	m.AddScoped("http://localhost:3002/nested/", "rxjs", "http://localhost:3002/nested/rxjs.js")

	got, ok := m.Resolve("rxjs", "")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3001/rxjs.js", got)

	got, ok = m.Resolve("rxjs", "http://localhost:3002/comp.js")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3002/rxjs.js", got)

	got, ok = m.Resolve("rxjs", "http://localhost:3002/nested/comp.js")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3002/nested/rxjs.js", got)

	_, ok = m.Resolve("lodash", "http://localhost:3002/comp.js")
	assert.False(t, ok)
}

func TestImportMap_JSONOmitsEmptyScopes(t *testing.T) {
	m := domain.NewImportMap()
	m.AddImport("a", "b")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"imports":{"a":"b"}}`, string(data))
}

func TestManifest_KeepsDocumentOrder(t *testing.T) {
	var m domain.Manifest
	err := json.Unmarshal([]byte(`{"team/mfe2":"http://b/remoteEntry.json","team/mfe1":"http://a/remoteEntry.json"}`), &m)
	require.NoError(t, err)

	want := domain.Manifest{
		{Name: "team/mfe2", URL: "http://b/remoteEntry.json"},
		{Name: "team/mfe1", URL: "http://a/remoteEntry.json"},
	}
	assert.Equal(t, want, m)

	url, ok := m.Lookup("team/mfe1")
	require.True(t, ok)
	assert.Equal(t, "http://a/remoteEntry.json", url)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"team/mfe2":"http://b/remoteEntry.json","team/mfe1":"http://a/remoteEntry.json"}`, string(data))

	updated := m.With("team/mfe2", "http://c/remoteEntry.json").With("host", "./remoteEntry.json")
	assert.Equal(t, "team/mfe2", updated[0].Name)
	assert.Equal(t, "http://c/remoteEntry.json", updated[0].URL)
	assert.Equal(t, "host", updated[2].Name)
	assert.Equal(t, "http://b/remoteEntry.json", m[0].URL)
}

func TestManifest_RejectsNonObject(t *testing.T) {
	var m domain.Manifest
	require.Error(t, json.Unmarshal([]byte(`["a"]`), &m))
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &m))
}

func TestParseRemoteEntry(t *testing.T) {
	entry, err := domain.ParseRemoteEntry([]byte(`{"name":"team/mfe1"}`), "http://localhost:3001/remoteEntry.json")
	require.NoError(t, err)
	assert.Equal(t, "team/mfe1", entry.Name)
	assert.Equal(t, "http://localhost:3001/remoteEntry.json", entry.URL)
	assert.NotNil(t, entry.Exposes)
	assert.NotNil(t, entry.Shared)
	assert.Empty(t, entry.Shared)

	_, err = domain.ParseRemoteEntry([]byte(`{`), "x")
	require.Error(t, err)
}

func TestNewRemoteInfo(t *testing.T) {
	info := domain.NewRemoteInfo(&domain.RemoteEntry{
		Name:    "team/mfe1",
		URL:     "http://localhost:3001/remoteEntry.json",
		Exposes: []domain.ExposesInfo{{Key: "./comp", OutFileName: "comp.js"}},
	})

	assert.Equal(t, "http://localhost:3001/", info.ScopeURL)
	url, ok := info.Module("./comp")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3001/comp.js", url)

	_, ok = info.Module("./missing")
	assert.False(t, ok)
}

func TestParseAction(t *testing.T) {
	for _, a := range []domain.Action{domain.ActionSkip, domain.ActionScope, domain.ActionShare} {
		got, err := domain.ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := domain.ParseAction("hoist")
	require.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestSharedExternal_Confirmed(t *testing.T) {
	entry := domain.SharedExternal{
		Dirty: true,
		Versions: []domain.SharedVersion{
			{Version: "7.8.1", URL: "a", Dirty: false},
			{Version: "7.9.0", URL: "b", Dirty: true},
		},
	}

	confirmed := entry.Confirmed()
	assert.False(t, confirmed.Dirty)
	for _, v := range confirmed.Versions {
		assert.False(t, v.Dirty)
	}
	assert.True(t, entry.Versions[1].Dirty, "original must not be mutated")

	found, ok := entry.Find("7.9.0")
	require.True(t, ok)
	assert.Equal(t, "b", found.URL)
}

func TestSharedVersion_Range(t *testing.T) {
	assert.Equal(t, "~7.8.0", domain.SharedVersion{Version: "7.8.1", RequiredVersion: "~7.8.0"}.Range())
	assert.Equal(t, "7.8.1", domain.SharedVersion{Version: "7.8.1"}.Range())
}

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t, filepath.Join(".federate", "store"), domain.DefaultStorePath())
	assert.Equal(t, filepath.Join(".federate", "federate.db"), domain.DefaultSQLitePath())
	assert.Equal(t, []string{"shared-externals", "remotes"}, domain.Namespaces())

	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.StorageFile, cfg.Storage.Driver)
	assert.Equal(t, domain.FormatJSON, cfg.Output.Format)
	assert.Equal(t, domain.LevelInfo, cfg.Log.Level)
}
