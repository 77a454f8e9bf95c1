package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/federate/internal/adapters/storage"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
)

func backends(t *testing.T) map[string]ports.Storage {
	t.Helper()

	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "federate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]ports.Storage{
		"memory": storage.NewMemory(),
		"file":   storage.NewFile(filepath.Join(t.TempDir(), "store")),
		"sqlite": db,
	}
}

func TestStorage_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			data, err := s.Fetch("missing")
			require.NoError(t, err)
			assert.Nil(t, data)

			err = s.Update("ns", func(current []byte) ([]byte, error) {
				assert.Nil(t, current)
				return []byte(`{"a":1}`), nil
			})
			require.NoError(t, err)

			err = s.Update("ns", func(current []byte) ([]byte, error) {
				assert.JSONEq(t, `{"a":1}`, string(current))
				return []byte(`{"a":2}`), nil
			})
			require.NoError(t, err)

			data, err = s.Fetch("ns")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(data))

			other, err := s.Fetch("other")
			require.NoError(t, err)
			assert.Nil(t, other)

			require.NoError(t, s.Clear("ns"))
			data, err = s.Fetch("ns")
			require.NoError(t, err)
			assert.Nil(t, data)

			require.NoError(t, s.Clear("ns"), "clearing twice is not an error")
		})
	}
}

func TestStorage_FailedUpdateKeepsDocument(t *testing.T) {
	boom := errors.New("boom")

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update("ns", func([]byte) ([]byte, error) {
				return []byte("keep"), nil
			}))

			err := s.Update("ns", func([]byte) ([]byte, error) {
				return nil, boom
			})
			require.ErrorIs(t, err, boom)
			assert.ErrorContains(t, err, domain.ErrStorageWriteFailed.Error())

			data, err := s.Fetch("ns")
			require.NoError(t, err)
			assert.Equal(t, "keep", string(data))
		})
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	first := storage.NewFile(dir)
	require.NoError(t, first.Update(domain.SharedExternalsNamespace, func([]byte) ([]byte, error) {
		return []byte(`{}`), nil
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")

	second := storage.NewFile(dir)
	data, err := second.Fetch(domain.SharedExternalsNamespace)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFile_CorruptDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0o600))

	s := storage.NewFile(dir)
	err := s.Update("ns", func([]byte) ([]byte, error) { return []byte("x"), nil })
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStorageWriteFailed.Error())
}

func TestSQLite_PersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "federate.db")

	db, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Update(domain.RemotesNamespace, func([]byte) ([]byte, error) {
		return []byte(`{"team/mfe1":{}}`), nil
	}))
	require.NoError(t, db.Close())

	reopened, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	data, err := reopened.Fetch(domain.RemotesNamespace)
	require.NoError(t, err)
	assert.JSONEq(t, `{"team/mfe1":{}}`, string(data))
}
