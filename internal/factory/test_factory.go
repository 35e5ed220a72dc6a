package factory

import (
	"time"

	"github.com/mcoot/scrabble-go2/internal/dependencies/mocks"
	"github.com/mcoot/scrabble-go2/internal/storage/memory"
	"github.com/mcoot/scrabble-go2/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The dictionary is left empty; call LoadTestDictionary.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small lexicon for testing: every two-letter
// word plus the longer words the test games play
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// two-letter words
		"aa", "ab", "ad", "ae", "ag", "ah", "ai", "al", "am", "an", "ar", "as", "at", "aw", "ax", "ay",
		"ba", "be", "bi", "bo", "by", "da", "de", "do", "ed", "ef", "eh", "el", "em", "en", "er", "es",
		"ex", "fa", "fe", "go", "ha", "he", "hi", "hm", "ho", "id", "if", "in", "is", "it", "jo", "ka",
		"ki", "la", "li", "lo", "ma", "me", "mi", "mm", "mo", "mu", "my", "na", "ne", "no", "nu", "od",
		"oe", "of", "oh", "oi", "om", "on", "op", "or", "os", "ow", "ox", "oy", "pa", "pe", "pi", "qi",
		"re", "sh", "si", "so", "ta", "ti", "to", "uh", "um", "un", "up", "us", "ut", "we", "wo", "xi",
		"xu", "ya", "ye", "yo", "za",
		// longer words
		"eel", "hel", "hep", "hoe", "lap", "lee", "ole", "ope", "owe", "own", "pee", "per", "pew",
		"hell", "help", "hole", "hope", "lope", "owns", "peel", "peer", "pole", "rope", "sown", "zero",
		"hello", "hells", "helps", "jello", "peers", "yells", "zeros",
	}
	return t.DictionaryService.LoadWords(words)
}
