package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/zerr"

	// Registers the pure Go sqlite driver.
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS namespaces (
	name  TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLite implements ports.Storage on a sqlite database, one row per namespace.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "path", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open database"), "path", path)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
		schema,
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, zerr.With(zerr.Wrap(err, "failed to prepare database"), "statement", stmt)
		}
	}

	return &SQLite{db: db}, nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Fetch returns the document stored under namespace, nil if none was written.
func (s *SQLite) Fetch(namespace string) ([]byte, error) {
	return s.fetch(context.Background(), s.db, namespace)
}

// Update replaces the document under namespace with the result of fn inside one transaction.
func (s *SQLite) Update(namespace string, fn func([]byte) ([]byte, error)) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStorageWriteFailed.Error())
	}

	current, err := s.fetch(ctx, tx, namespace)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	next, err := fn(current)
	if err != nil {
		_ = tx.Rollback()
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO namespaces (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		namespace, next)
	if err != nil {
		_ = tx.Rollback()
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}

	if err := tx.Commit(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}
	return nil
}

// Clear removes the document under namespace.
func (s *SQLite) Clear(namespace string) error {
	if _, err := s.db.Exec(`DELETE FROM namespaces WHERE name = ?`, namespace); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "namespace", namespace)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLite) fetch(ctx context.Context, q querier, namespace string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM namespaces WHERE name = ?`, namespace).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageReadFailed.Error()), "namespace", namespace)
	}
	return value, nil
}
