package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const localOpTimeout = 2 * time.Second

// LocalStorage is the persistent KV ("local storage") kept in state.sqlite.
// Multiple processes may share the file; last write wins.
type LocalStorage struct {
	db *sql.DB
}

// OpenLocal opens (and migrates) the local storage database for s.
func (s Store) OpenLocal(ctx context.Context) (*LocalStorage, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateLocal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &LocalStorage{db: db}, nil
}

func migrateLocal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS local_storage (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate local storage: %w", err)
		}
	}
	return nil
}

func (l *LocalStorage) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *LocalStorage) Get(key string) (string, bool, error) {
	if l == nil || l.db == nil {
		return "", false, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), localOpTimeout)
	defer cancel()

	var v string
	err := l.db.QueryRowContext(ctx, `SELECT v FROM local_storage WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (l *LocalStorage) Set(key, value string) error {
	if l == nil || l.db == nil {
		return ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), localOpTimeout)
	defer cancel()

	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO local_storage(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, value, time.Now().UTC().UnixMilli())
	return err
}

func (l *LocalStorage) Remove(key string) error {
	if l == nil || l.db == nil {
		return ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), localOpTimeout)
	defer cancel()

	_, err := l.db.ExecContext(ctx, `DELETE FROM local_storage WHERE k = ?`, key)
	return err
}

// Keys lists all stored keys (used by `broadcast settings get --all` style diagnostics).
func (l *LocalStorage) Keys() ([]string, error) {
	if l == nil || l.db == nil {
		return nil, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), localOpTimeout)
	defer cancel()

	rows, err := l.db.QueryContext(ctx, `SELECT k FROM local_storage ORDER BY k`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
