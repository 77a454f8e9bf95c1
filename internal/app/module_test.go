package app_test

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/federate/internal/adapters/detector"
	"go.trai.ch/federate/internal/app"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/federate/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLoadRemoteModule(t *testing.T) {
	h := newHarness(t)
	h.serve(map[string]func() *domain.RemoteEntry{
		mfe1URL: mfe1Entry,
		mfe3URL: remoteEntry("mfe3", "widget", rxjsShared("7.8.1", "^7.0.0")),
	})
	cfg := newConfig(t, mfe1)

	_, err := h.app.InitFederation(context.Background(), cfg)
	require.NoError(t, err)

	t.Run("known remote", func(t *testing.T) {
		for _, module := range []string{"./comp", "comp"} {
			url, err := h.app.LoadRemoteModule(context.Background(), cfg, app.ModuleRequest{
				RemoteName:    "team/mfe1",
				ExposedModule: module,
			})
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:3001/comp.js", url)
		}
	})

	t.Run("empty remote name", func(t *testing.T) {
		_, err := h.app.LoadRemoteModule(context.Background(), cfg, app.ModuleRequest{RemoteName: "  "})
		require.ErrorIs(t, err, domain.ErrEmptyRemoteName)
	})

	t.Run("unexposed module", func(t *testing.T) {
		_, err := h.app.LoadRemoteModule(context.Background(), cfg, app.ModuleRequest{
			RemoteName:    "team/mfe1",
			ExposedModule: "./missing",
		})
		require.ErrorIs(t, err, domain.ErrUnexposedModule)
	})

	t.Run("unknown remote without entry", func(t *testing.T) {
		_, err := h.app.LoadRemoteModule(context.Background(), cfg, app.ModuleRequest{
			RemoteName:    "team/mfe3",
			ExposedModule: "./widget",
		})
		require.ErrorIs(t, err, domain.ErrRemoteNotFound)
	})

	t.Run("unknown remote with entry", func(t *testing.T) {
		url, err := h.app.LoadRemoteModule(context.Background(), cfg, app.ModuleRequest{
			RemoteName:    "team/mfe3",
			ExposedModule: "./widget",
			RemoteEntry:   mfe3URL,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3003/widget.js", url)

		current, ok := h.app.ImportMap()
		require.True(t, ok)
		assert.Equal(t, "http://localhost:3001/comp.js", current.Imports["team/mfe1/comp"])
		assert.Equal(t, "http://localhost:3003/widget.js", current.Imports["team/mfe3/widget"])
		assert.Equal(t, "http://localhost:3001/rxjs.js", current.Imports["rxjs"])

		snapshot, err := h.app.CacheList(cfg)
		require.NoError(t, err)
		assert.Contains(t, snapshot.Remotes, "team/mfe3")
	})

	t.Run("unreachable entry", func(t *testing.T) {
		_, err := h.app.LoadRemoteModule(context.Background(), cfg, app.ModuleRequest{
			RemoteName:    "team/mfe4",
			ExposedModule: "./comp",
			RemoteEntry:   "http://localhost:3004/remoteEntry.json",
		})
		require.ErrorIs(t, err, domain.ErrRemoteEntryFetch)
	})
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name      string
		overrides app.Overrides
		check     func(t *testing.T, cfg *domain.Config)
		wantErr   error
	}{
		{
			name: "overrides win",
			overrides: app.Overrides{
				Manifest: "mf.json",
				Strict:   true,
				Output:   "dist/importmap.html",
				Format:   "html",
				Storage:  "memory",
				Clear:    true,
				LogLevel: "debug",
				LogJSON:  true,
				Addr:     ":9000",
			},
			check: func(t *testing.T, cfg *domain.Config) {
				t.Helper()
				assert.Equal(t, "mf.json", cfg.ManifestLocation)
				assert.True(t, cfg.Strict)
				assert.Equal(t, domain.OutputConfig{Path: "dist/importmap.html", Format: domain.FormatHTML}, cfg.Output)
				assert.Equal(t, domain.StorageConfig{Driver: domain.StorageMemory, Clear: true}, cfg.Storage)
				assert.Equal(t, domain.LogConfig{Level: domain.LevelDebug, JSON: true}, cfg.Log)
				assert.Equal(t, ":9000", cfg.ServeAddr)
			},
		},
		{
			name: "no overrides keep the file",
			check: func(t *testing.T, cfg *domain.Config) {
				t.Helper()
				assert.Equal(t, "remotes.json", cfg.ManifestLocation)
				assert.False(t, cfg.Strict)
			},
		},
		{
			name:      "unknown format",
			overrides: app.Overrides{Format: "xml"},
			wantErr:   domain.ErrUnknownOutputFormat,
		},
		{
			name:      "unknown storage driver",
			overrides: app.Overrides{Storage: "redis"},
			wantErr:   domain.ErrUnknownStorageDriver,
		},
		{
			name:      "unknown log level",
			overrides: app.Overrides{LogLevel: "trace"},
			wantErr:   domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.cfgLoader.EXPECT().Load("/work").DoAndReturn(func(string) (*domain.Config, error) {
				cfg := domain.DefaultConfig()
				cfg.Root = "/work"
				cfg.ManifestLocation = "remotes.json"
				return cfg, nil
			})

			cfg, err := h.app.LoadConfig("/work", tt.overrides)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_LoaderFailure(t *testing.T) {
	h := newHarness(t)
	h.cfgLoader.EXPECT().Load("/work").Return(nil, domain.ErrConfigParseFailed)

	_, err := h.app.LoadConfig("/work", app.Overrides{})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

// settingsLogger records the settings LoadConfig applies to a configurable logger.
type settingsLogger struct {
	*mocks.MockLogger
	level domain.LogLevel
	json  bool
	plain bool
}

func (l *settingsLogger) SetLevel(level domain.LogLevel) { l.level = level }
func (l *settingsLogger) SetJSON(enable bool) { l.json = enable }
func (l *settingsLogger) SetPlain(enable bool) { l.plain = enable }

func TestLoadConfig_OutputMode(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.OutputMode
		flag     string
		want     bool
	}{
		{name: "terminal is styled", detected: detector.ModeStyled, want: false},
		{name: "pipe or CI is plain", detected: detector.ModePlain, want: true},
		{name: "flag forces plain", detected: detector.ModeStyled, flag: "plain", want: true},
		{name: "ci flag forces plain", detected: detector.ModeStyled, flag: "ci", want: true},
		{name: "flag forces styled", detected: detector.ModePlain, flag: "styled", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recorder *settingsLogger
			h := newHarness(t,
				withEnvironment(tt.detected),
				withLogger(func(m *mocks.MockLogger) ports.Logger {
					recorder = &settingsLogger{MockLogger: m}
					return recorder
				}),
			)
			h.cfgLoader.EXPECT().Load("/work").Return(domain.DefaultConfig(), nil)

			cfg, err := h.app.LoadConfig("/work", app.Overrides{OutputMode: tt.flag, LogJSON: true})
			require.NoError(t, err)

			assert.Equal(t, tt.want, cfg.Plain)
			assert.Equal(t, tt.want, recorder.plain)
			assert.True(t, recorder.json)
			assert.Equal(t, domain.LevelInfo, recorder.level)
		})
	}
}

func events(paths ...string) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, p := range paths {
			if !yield(ports.WatchEvent{Path: p}) {
				return
			}
		}
	}
}

func TestWatch(t *testing.T) {
	h := newHarness(t)
	h.serve(map[string]func() *domain.RemoteEntry{mfe1URL: mfe1Entry})
	root := t.TempDir()
	manifestPath := filepath.Join(root, "manifest.json")

	h.cfgLoader.EXPECT().Load(root).DoAndReturn(func(string) (*domain.Config, error) {
		cfg := domain.DefaultConfig()
		cfg.Root = root
		cfg.ManifestLocation = "manifest.json"
		cfg.Storage = domain.StorageConfig{Driver: domain.StorageMemory}
		cfg.Output.Path = ""
		return cfg, nil
	}).Times(2)
	h.manifests.EXPECT().FetchManifest(gomock.Any(), manifestPath).Return(domain.Manifest{mfe1}, nil).Times(2)

	gomock.InOrder(
		h.watcher.EXPECT().Start(gomock.Any(), []string{manifestPath}).Return(nil),
		h.watcher.EXPECT().Events().Return(events(manifestPath)),
		h.watcher.EXPECT().Stop().Return(nil),
	)

	require.NoError(t, h.app.Watch(context.Background(), root, app.Overrides{}))

	current, ok := h.app.ImportMap()
	require.True(t, ok)
	assert.Contains(t, current.Imports, "team/mfe1/comp")
}

func TestWatch_FailedRunsAreLogged(t *testing.T) {
	h := newHarness(t)
	root := t.TempDir()
	manifestPath := filepath.Join(root, "manifest.json")

	h.cfgLoader.EXPECT().Load(root).DoAndReturn(func(string) (*domain.Config, error) {
		cfg := domain.DefaultConfig()
		cfg.Root = root
		cfg.ManifestLocation = "manifest.json"
		cfg.Storage = domain.StorageConfig{Driver: domain.StorageMemory}
		return cfg, nil
	}).Times(2)
	h.manifests.EXPECT().FetchManifest(gomock.Any(), manifestPath).Return(nil, errors.New("no such file")).Times(2)
	h.log.EXPECT().Error(gomock.Cond(func(x any) bool {
		err, ok := x.(error)
		return ok && errors.Is(err, domain.ErrManifestFetch)
	})).Times(2)

	h.watcher.EXPECT().Start(gomock.Any(), []string{manifestPath}).Return(nil)
	h.watcher.EXPECT().Events().Return(events(manifestPath))
	h.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, h.app.Watch(context.Background(), root, app.Overrides{}))
}

func TestWatch_NothingLocal(t *testing.T) {
	h := newHarness(t)
	h.serve(map[string]func() *domain.RemoteEntry{mfe1URL: mfe1Entry})
	root := t.TempDir()

	h.cfgLoader.EXPECT().Load(root).DoAndReturn(func(string) (*domain.Config, error) {
		cfg := domain.DefaultConfig()
		cfg.Root = root
		cfg.Remotes = domain.Manifest{mfe1}
		cfg.Storage = domain.StorageConfig{Driver: domain.StorageMemory}
		cfg.Output.Path = ""
		return cfg, nil
	})

	err := h.app.Watch(context.Background(), root, app.Overrides{})
	require.ErrorIs(t, err, domain.ErrNoManifest)
}

func TestServe_StopsWithContext(t *testing.T) {
	h := newHarness(t)
	h.serve(map[string]func() *domain.RemoteEntry{mfe1URL: mfe1Entry})

	cfg := newConfig(t, mfe1)
	cfg.ServeAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.app.Serve(ctx, cfg))
}

func TestClearCache(t *testing.T) {
	h := newHarness(t)
	h.serve(map[string]func() *domain.RemoteEntry{mfe1URL: mfe1Entry})
	cfg := newConfig(t, mfe1)

	_, err := h.app.InitFederation(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, h.app.ClearCache(cfg))

	snapshot, err := h.app.CacheList(cfg)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Shared)
	assert.Empty(t, snapshot.Remotes)
}
