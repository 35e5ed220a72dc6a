package redis

import (
	"fmt"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

// Key prefix for all game-related data
const keyPrefix = "scrabble"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of known game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// snapshotsKey returns the Redis key for the LIST backing a snapshot stack
func snapshotsKey(id model.GameID, stack storage.SnapshotStack) string {
	return fmt.Sprintf("%s:snapshots:%s:%s", keyPrefix, id, stack)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
