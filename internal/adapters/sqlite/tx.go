package sqlite

import (
	"database/sql"
	"fmt"

	"chemint/internal/domain"
)

// settingsTx groups the writes of one SaveSettings call
type settingsTx struct {
	tx *sql.Tx
}

func (s *Store) begin() (*settingsTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &settingsTx{tx: tx}, nil
}

// UpsertSetting inserts or updates one category row
func (t *settingsTx) UpsertSetting(setting domain.SavedSetting) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO categories (name, visible, color)
		VALUES (?, ?, ?)
	`, setting.Name, setting.Visible, setting.Color)
	return err
}

// DeleteAll removes every category row
func (t *settingsTx) DeleteAll() error {
	_, err := t.tx.Exec(`DELETE FROM categories`)
	return err
}

// Commit commits the transaction
func (t *settingsTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Calling it after Commit is a no-op.
func (t *settingsTx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
