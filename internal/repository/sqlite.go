package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

type sqliteSlot struct {
	conn *sql.DB
}

// NewSQLiteStateRepository expects the slots table created by storage.SQLiteStorage.Init.
func NewSQLiteStateRepository(conn *sql.DB, key string) StateRepository {
	return newStateRepository(&sqliteSlot{conn: conn}, key)
}

func (that *sqliteSlot) read(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM slots WHERE key = ?`

	var value []byte

	err := that.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find slot: %w", err)
	}

	return value, nil
}

func (that *sqliteSlot) write(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := that.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("can't save slot: %w", err)
	}

	return nil
}

func (that *sqliteSlot) remove(ctx context.Context, key string) error {
	query := `DELETE FROM slots WHERE key = ?`

	if _, err := that.conn.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("can't delete slot: %w", err)
	}

	return nil
}
