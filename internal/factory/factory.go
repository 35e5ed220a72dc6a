package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/scrabble-go2/internal/dependencies/clock"
	"github.com/mcoot/scrabble-go2/internal/dependencies/random"
	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/services/board"
	"github.com/mcoot/scrabble-go2/internal/services/dictionary"
	"github.com/mcoot/scrabble-go2/internal/services/game"
	"github.com/mcoot/scrabble-go2/internal/services/move"
	"github.com/mcoot/scrabble-go2/internal/services/scoring"
	"github.com/mcoot/scrabble-go2/internal/storage"
	"github.com/mcoot/scrabble-go2/internal/storage/memory"
	redisstorage "github.com/mcoot/scrabble-go2/internal/storage/redis"
	sqlitestorage "github.com/mcoot/scrabble-go2/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	BoardService      *board.Service
	ScoringService    *scoring.Service
	MoveEngine        *move.Engine
	GameController    *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, words saved in storage are used, then the embedded default list
	DictionaryPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (optional if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
	// RandomSeed makes bag shuffles and game IDs deterministic (optional)
	RandomSeed *uint64
}

// New creates a new application with all dependencies wired and the dictionary loaded
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	var rnd random.Random = random.New()
	if cfg.RandomSeed != nil {
		rnd = random.NewSeeded(*cfg.RandomSeed)
	}

	app := newWithDependencies(store, clock.New(), rnd, logger)

	if err := loadDictionary(ctx, app.DictionaryService, cfg.DictionaryPath, logger); err != nil {
		return nil, err
	}

	return app, nil
}

// newStorage creates the configured storage backend
func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		return sqlitestorage.New(sqliteCfg)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

// loadDictionary loads the word list from a file if one is configured,
// otherwise from storage, falling back to the embedded default list
func loadDictionary(ctx context.Context, dict *dictionary.Service, path string, logger *slog.Logger) error {
	if path != "" {
		return dict.LoadFromFile(ctx, path)
	}

	err := dict.LoadFromStorage(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrDictionaryNotLoaded) {
		return err
	}

	logger.Info("no dictionary configured, using embedded word list")
	return dict.LoadDefault()
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	dictService := dictionary.New(store)
	boardService := board.New()
	scoringService := scoring.New()
	engine := move.New(dictService, boardService, scoringService, logger)
	gameController := game.NewController(store, engine, scoringService, clk, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		BoardService:      boardService,
		ScoringService:    scoringService,
		MoveEngine:        engine,
		GameController:    gameController,
	}
}
