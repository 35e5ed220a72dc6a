package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// Games and snapshots are stored as JSON documents.
type Storage struct {
	db *sql.DB
}

// New opens (and creates if missing) the database and applies migrations
func New(cfg Config) (*Storage, error) {
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on", cfg.Path, cfg.BusyTimeoutMs)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serializes writers anyway, and ":memory:" is per connection
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(game.ID), data,
	)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM games WHERE id=?`, string(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	return decodeGame(data)
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM games ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []model.GameID{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, model.GameID(id))
	}
	return ids, rows.Err()
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE game_id=?`, string(id)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id=?`, string(id)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Snapshot operations

func (s *Storage) PushSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (game_id, stack, data) VALUES (?, ?, ?)`,
		string(id), string(stack), data,
	)
	return err
}

func (s *Storage) PopSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack) (*model.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		rowID int64
		data  []byte
	)
	err = tx.QueryRowContext(ctx, `
        SELECT id, data FROM snapshots
        WHERE game_id=? AND stack=?
        ORDER BY id DESC
        LIMIT 1`,
		string(id), string(stack),
	).Scan(&rowID, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id=?`, rowID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return decodeGame(data)
}

func (s *Storage) ClearSnapshots(ctx context.Context, id model.GameID, stack storage.SnapshotStack) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE game_id=? AND stack=?`,
		string(id), string(stack),
	)
	return err
}

func (s *Storage) SnapshotCount(ctx context.Context, id model.GameID, stack storage.SnapshotStack) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM snapshots WHERE game_id=? AND stack=?`,
		string(id), string(stack),
	).Scan(&n)
	return n, err
}

func decodeGame(data []byte) (*model.Game, error) {
	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM dictionary_words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionary_words`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary_words (word) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return err
		}
	}

	return tx.Commit()
}
