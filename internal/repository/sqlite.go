package repository

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite as the slot store
type SQLiteRepository struct {
	db    *sql.DB
	items *slotItems
}

// NewSQLiteRepository creates a new SQLite repository serving the given slot key
func NewSQLiteRepository(dbPath, key string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	repo := &SQLiteRepository{
		db: db,
	}
	repo.items = &slotItems{backend: &sqliteSlots{db: db}, key: key}

	return repo, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);
	`)
	return err
}

// Items returns the item repository
func (r *SQLiteRepository) Items() ItemRepository {
	return r.items
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// sqliteSlots stores each slot as one row
type sqliteSlots struct {
	db *sql.DB
}

func (s *sqliteSlots) get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *sqliteSlots) put(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots(key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value))
	return err
}
