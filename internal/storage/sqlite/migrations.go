package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// migration is one schema step, applied once and recorded in _migrations
type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{
		name: "001_games",
		sql: `
CREATE TABLE IF NOT EXISTS games (
    id         TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		name: "002_snapshots",
		sql: `
CREATE TABLE IF NOT EXISTS snapshots (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id TEXT NOT NULL,
    stack   TEXT NOT NULL,
    data    BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_game_stack ON snapshots (game_id, stack, id);`,
	},
	{
		name: "003_dictionary",
		sql: `
CREATE TABLE IF NOT EXISTS dictionary_words (
    word TEXT PRIMARY KEY
);`,
	},
}

// migrate applies pending migrations in order, each in its own transaction
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
	}
	return nil
}
