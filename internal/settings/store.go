// Package settings persists the user's global style tier.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Store keeps one settings blob. Load returns nil data when nothing has been
// saved yet.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// FileName is the settings file inside a FileStore directory.
const FileName = "data.json"

// FileStore keeps the blob in data.json inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the settings file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", s.Path(), err)
	}
	return data, nil
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("replacing settings %s: %w", s.Path(), err)
	}
	return nil
}

// sqliteKey is the row the blob is stored under.
const sqliteKey = "global"

// SQLiteStore keeps the blob in a settings(key, value) table.
type SQLiteStore struct {
	conn *sqlite.Conn
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating settings directory: %w", err)
		}
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open settings db %s: %w", path, err)
	}
	err = sqlitex.ExecuteTransient(conn, `CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.conn.SetInterrupt(s.conn.SetInterrupt(ctx.Done()))

	var data []byte
	err := sqlitex.Execute(s.conn, `SELECT value FROM settings WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{sqliteKey},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data = []byte(stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return data, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.conn.SetInterrupt(s.conn.SetInterrupt(ctx.Done()))

	err := sqlitex.Execute(s.conn,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		&sqlitex.ExecOptions{Args: []any{sqliteKey, string(data)}})
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
