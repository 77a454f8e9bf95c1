package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/zerr"
)

// File implements ports.Storage using a file-per-namespace strategy.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile creates a storage backed by the directory at the given path.
// The directory is created on first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Fetch returns the document stored under namespace, nil if none was written.
func (s *File) Fetch(namespace string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(namespace)
}

// Update replaces the document under namespace with the result of fn.
// The new document is written to a temporary file and renamed into place.
func (s *File) Update(namespace string, fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(namespace)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "dir", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStorageWriteFailed.Error())
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(next); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStorageWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStorageWriteFailed.Error())
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStorageWriteFailed.Error())
	}
	if err := os.Rename(tmp.Name(), s.filename(namespace)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}
	return nil
}

// Clear removes the document under namespace.
func (s *File) Clear(namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filename(namespace)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}
	return nil
}

func (s *File) read(namespace string) ([]byte, error) {
	//nolint:gosec // Path is constructed from the configured directory and a hashed filename
	data, err := os.ReadFile(s.filename(namespace))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageReadFailed.Error()), "namespace", namespace)
	}
	return data, nil
}

func (s *File) filename(namespace string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(namespace), 16)+".json")
}
