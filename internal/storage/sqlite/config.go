package sqlite

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file, created with its parent directory if missing.
	// ":memory:" keeps everything in process.
	Path string

	// BusyTimeoutMs is how long a writer waits on a locked database
	BusyTimeoutMs int
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:          "./data/scrabble.db",
		BusyTimeoutMs: 5000,
	}
}
