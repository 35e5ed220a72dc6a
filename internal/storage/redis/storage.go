package redis

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	return decodeGame(data)
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	members, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []model.GameID{}, nil
	}

	// Games expire on their own; prune index entries whose key is gone
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = gameKey(model.GameID(m))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.GameID, 0, len(members))
	var expired []interface{}
	for i, val := range values {
		if val == nil {
			expired = append(expired, members[i])
			continue
		}
		ids = append(ids, model.GameID(members[i]))
	}
	if len(expired) > 0 {
		if err := s.client.SRem(ctx, gamesIndexKey(), expired...).Err(); err != nil {
			return nil, err
		}
	}

	slices.Sort(ids)
	return ids, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id), snapshotsKey(id, storage.UndoStack), snapshotsKey(id, storage.RedoStack))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Snapshot operations

func (s *Storage) PushSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	key := snapshotsKey(id, stack)
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, key, data)
	if s.cfg.MaxSnapshots > 0 {
		pipe.LTrim(ctx, key, 0, int64(s.cfg.MaxSnapshots-1))
	}
	pipe.Expire(ctx, key, s.cfg.GameTTL) // Keep stack TTL in sync with the game
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) PopSnapshot(ctx context.Context, id model.GameID, stack storage.SnapshotStack) (*model.Game, error) {
	data, err := s.client.LPop(ctx, snapshotsKey(id, stack)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	return decodeGame(data)
}

func (s *Storage) ClearSnapshots(ctx context.Context, id model.GameID, stack storage.SnapshotStack) error {
	return s.client.Del(ctx, snapshotsKey(id, stack)).Err()
}

func (s *Storage) SnapshotCount(ctx context.Context, id model.GameID, stack storage.SnapshotStack) (int, error) {
	n, err := s.client.LLen(ctx, snapshotsKey(id, stack)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
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
	key := dictionaryKey()

	// Check if dictionary exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	// Get all words from the set
	words, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	// Delete existing dictionary and add new words atomically
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		// Convert []string to []interface{} for SAdd
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
