package dictionary

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/storage"
)

// Small built-in lexicon so the server runs without a dictionary file
//
//go:embed default_words.txt
var embeddedWords string

// Service is the lexicon: a finite set of lowercase words with exact,
// case-insensitive membership.
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new DictionaryService
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
		words:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return model.ErrDictionaryNotLoaded
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	words, err := readWords(file)
	if err != nil {
		return fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}

	// Save to storage for future use
	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadDefault loads the built-in word list
func (s *Service) LoadDefault() error {
	words, err := readWords(strings.NewReader(embeddedWords))
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		// Store lowercase for case-insensitive matching
		s.words[strings.ToLower(word)] = struct{}{}
	}
	s.loaded = true
	return nil
}

// IsValidWord checks if a word exists in the dictionary
// Words must be at least 2 characters
func (s *Service) IsValidWord(word string) bool {
	if len([]rune(word)) < 2 {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// InvalidWords returns the words not in the dictionary, in input order
func (s *Service) InvalidWords(words []string) []string {
	var invalid []string
	for _, w := range words {
		if !s.IsValidWord(w) {
			invalid = append(invalid, w)
		}
	}
	return invalid
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Lexicon is the read side of the dictionary used by move validation
type Lexicon interface {
	IsValidWord(word string) bool
	InvalidWords(words []string) []string
}

// Interface check
type ServiceInterface interface {
	Lexicon
	IsLoaded() bool
	WordCount() int
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadDefault() error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)
