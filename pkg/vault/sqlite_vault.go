package vault

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mr-shifu/puzzle-lib/pkg/common/vault"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS vault (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteVault persists blobs in a single SQLite table. Each Import is one
// statement, so a write either lands completely or not at all.
type SQLiteVault struct {
	db *sql.DB
}

var _ vault.DurableVault = (*SQLiteVault)(nil)

// NewSQLiteVault opens (creating if needed) the database at path.
// The special path ":memory:" opens a private in-memory database.
func NewSQLiteVault(path string) (*SQLiteVault, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("vault: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("vault: open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("vault: create schema: %w", err)
	}

	return &SQLiteVault{db: db}, nil
}

func (store *SQLiteVault) Import(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := store.db.Exec(
		`INSERT INTO vault (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("vault: import %q: %w", key, err)
	}
	return nil
}

func (store *SQLiteVault) Get(key string) ([]byte, error) {
	var value []byte
	err := store.db.QueryRow(`SELECT value FROM vault WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("vault: get %q: %w", key, err)
	}
	return value, nil
}

func (store *SQLiteVault) Close() error {
	return store.db.Close()
}

type SQLiteVaultFactory struct{}

// NewVault opens the SQLite database at location
func (f SQLiteVaultFactory) NewVault(location string) (vault.DurableVault, error) {
	return NewSQLiteVault(location)
}
