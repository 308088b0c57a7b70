package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"chemint/internal/domain"
	"chemint/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Store implements ports.SettingsStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements SettingsStore
var _ ports.SettingsStore = (*Store)(nil)

// Open opens (creating if needed) the settings database at dbPath
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS categories (
			name TEXT PRIMARY KEY,
			visible INTEGER NOT NULL,
			color TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// LoadSettings returns every saved category setting, ordered by name
func (s *Store) LoadSettings() ([]domain.SavedSetting, error) {
	rows, err := s.db.Query(`SELECT name, visible, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var out []domain.SavedSetting
	for rows.Next() {
		var setting domain.SavedSetting
		if err := rows.Scan(&setting.Name, &setting.Visible, &setting.Color); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out = append(out, setting)
	}
	return out, rows.Err()
}

// SaveSettings replaces the saved settings in a single transaction
func (s *Store) SaveSettings(settings []domain.SavedSetting) error {
	tx, err := s.begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	for _, setting := range settings {
		if err := tx.UpsertSetting(setting); err != nil {
			return fmt.Errorf("failed to save %s: %w", setting.Name, err)
		}
	}
	return tx.Commit()
}
