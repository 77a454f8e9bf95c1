package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/federate/internal/adapters/watcher"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
)

func TestWatcher_ReportsChangesOfTargets(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "manifest.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(target, []byte(`{}`), 0o600))

	w, err := watcher.NewWatcher(nil, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, []string{target}))

	received := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			received <- event
			return
		}
	}()

	require.NoError(t, os.WriteFile(other, []byte(`{}`), 0o600))
	require.NoError(t, os.WriteFile(target, []byte(`{"team/mfe1":"x"}`), 0o600))

	select {
	case event := <-received:
		assert.Equal(t, target, event.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for watch event")
	}
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(target, nil, 0o600))

	w, err := watcher.NewWatcher(nil, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), []string{target}))

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "stop is idempotent")

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events iterator did not end")
	}
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(target, nil, 0o600))

	w, err := watcher.NewWatcher(nil, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, []string{target}))

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events iterator did not end after cancel")
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := watcher.NewWatcher(nil, time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	err = w.Start(context.Background(), []string{filepath.Join(t.TempDir(), "missing", "federate.yaml")})
	require.Error(t, err)
}
