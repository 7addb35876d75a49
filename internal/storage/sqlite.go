package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/lnk/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'page',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);

		CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the settings column for link behaviour settings.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE links ADD COLUMN settings TEXT NOT NULL DEFAULT '{}';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, title, url, type, created_at
		FROM pages
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Page
		var createdAtStr string

		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.Type, &createdAtStr); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		store.Pages = append(store.Pages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, url, title, settings, created_at, updated_at
		FROM links
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.Link
		var settingsJSON, createdAtStr, updatedAtStr string

		if err := rows.Scan(
			&l.ID, &l.Value.URL, &l.Value.Title,
			&settingsJSON, &createdAtStr, &updatedAtStr,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(settingsJSON), &l.Value.Settings); err != nil {
			l.Value.Settings = nil
		}
		if len(l.Value.Settings) == 0 {
			l.Value.Settings = nil
		}

		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)

		store.Links = append(store.Links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save writes the store to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM links"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM pages"); err != nil {
		return err
	}

	pageStmt, err := tx.Prepare(`
		INSERT INTO pages (id, title, url, type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer pageStmt.Close()

	for _, p := range store.Pages {
		if _, err := pageStmt.Exec(
			p.ID, p.Title, p.URL, p.Type, p.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert page %s: %w", p.ID, err)
		}
	}

	linkStmt, err := tx.Prepare(`
		INSERT INTO links (id, url, title, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer linkStmt.Close()

	for _, l := range store.Links {
		settingsJSON := []byte("{}")
		if len(l.Value.Settings) > 0 {
			settingsJSON, err = json.Marshal(l.Value.Settings)
			if err != nil {
				return fmt.Errorf("encode settings for %s: %w", l.ID, err)
			}
		}

		if _, err := linkStmt.Exec(
			l.ID, l.Value.URL, l.Value.Title, string(settingsJSON),
			l.CreatedAt.Format(time.RFC3339), l.UpdatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert link %s: %w", l.ID, err)
		}
	}

	return tx.Commit()
}
