package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabble-go2/internal/api"
	"github.com/mcoot/scrabble-go2/internal/api/apierr"
	"github.com/mcoot/scrabble-go2/internal/api/response"
	"github.com/mcoot/scrabble-go2/internal/factory"
	"github.com/mcoot/scrabble-go2/internal/model"
	"github.com/mcoot/scrabble-go2/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestDictionary())

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Dictionary:     app.DictionaryService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, etag string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if etag != "" {
		req.Header.Set("If-Match", etag)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createGame creates a game with ID G1 and returns its ETag
func (ts *testServer) createGame(t *testing.T, players ...string) string {
	t.Helper()
	if len(players) == 0 {
		players = []string{"Alice", "Bob"}
	}
	ts.app.MockRandom.QueueString("G1")
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"players": players}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return rr.Header().Get("ETag")
}

func (ts *testServer) setHand(t *testing.T, idx int, letters string) {
	t.Helper()
	ctx := context.Background()
	g, err := ts.app.Storage.GetGame(ctx, "G1")
	require.NoError(t, err)
	g.Players[idx].Hand = testutil.HandOf(letters)
	require.NoError(t, ts.app.Storage.SaveGame(ctx, g))
}

func (ts *testServer) playHello(t *testing.T) response.MoveResponse {
	t.Helper()
	ts.setHand(t, 0, "helloxy")
	rr := ts.request(http.MethodPost, "/api/v1/games/G1/moves", map[string]any{
		"x": 7, "y": 7, "direction": "right", "word": "hello",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, ts.app.DictionaryService.WordCount(), health.Words)
	assert.Positive(t, health.Words)
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("G1")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"players": []string{"Alice", "Bob"}}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("ETag"))

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "G1", resp.ID)
	assert.Equal(t, `"`+resp.Version+`"`, rr.Header().Get("ETag"))
	assert.Len(t, resp.Players, 2)
	assert.Equal(t, "Alice", resp.CurrentPlayer)
	assert.True(t, resp.FirstMove)
	assert.Equal(t, 86, resp.BagRemaining)
	assert.Len(t, resp.Hand.Tiles, model.HandSize)
	assert.Equal(t, "Alice", resp.Hand.Player)
	require.Len(t, resp.Board.Tiles, model.BoardSize)
	assert.Equal(t, "...............", resp.Board.Tiles[7])
	assert.Equal(t, "T..d...T...d..T", resp.Board.Premiums[0])
	assert.Equal(t, "T..d.......d..T", resp.Board.Premiums[7])
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"players": []string{"Alice"}}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInsufficientPlayers, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"players": []string{"a", "b", "c", "d", "e"}}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeTooManyPlayers, decodeError(t, rr).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rec).Code)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/NOPE", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Code)
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.GameList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"G1"}, resp.Games)
}

func TestPlayMove(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)

	resp := ts.playHello(t)

	assert.Equal(t, "Alice", resp.Player)
	assert.Equal(t, 9, resp.Score)
	require.Len(t, resp.Words, 1)
	assert.Equal(t, "hello", resp.Words[0].Word)
	assert.True(t, resp.Words[0].Primary)
	assert.Equal(t, ".......hello...", resp.Game.Board.Tiles[7])
	assert.Equal(t, "Bob", resp.Game.CurrentPlayer)
	assert.False(t, resp.Game.FirstMove)
	assert.Equal(t, 9, resp.Game.Players[0].Score)
}

func TestPlayMoveWithBlank(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)
	ts.setHand(t, 0, "hell?xy")

	rr := ts.request(http.MethodPost, "/api/v1/games/G1/moves", map[string]any{
		"x": 7, "y": 7, "direction": "right", "word": "hello", "blanks": []int{4},
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Score)
	assert.Equal(t, ".......hellO...", resp.Game.Board.Tiles[7])
}

func TestPlayMoveRejected(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "unknown word",
			body:   map[string]any{"x": 7, "y": 7, "direction": "right", "word": "hlleo"},
			status: http.StatusUnprocessableEntity,
			code:   apierr.CodeInvalidWord,
		},
		{
			name:   "misses the centre",
			body:   map[string]any{"x": 0, "y": 0, "direction": "right", "word": "hello"},
			status: http.StatusUnprocessableEntity,
			code:   apierr.CodeDisconnected,
		},
		{
			name:   "tiles not held",
			body:   map[string]any{"x": 7, "y": 7, "direction": "down", "word": "zero"},
			status: http.StatusUnprocessableEntity,
			code:   apierr.CodeInsufficientTiles,
		},
		{
			name:   "runs off the board",
			body:   map[string]any{"x": 12, "y": 7, "direction": "right", "word": "hello"},
			status: http.StatusBadRequest,
			code:   apierr.CodeOutOfBounds,
		},
		{
			name:   "bad direction",
			body:   map[string]any{"x": 7, "y": 7, "direction": "diagonal", "word": "hello"},
			status: http.StatusBadRequest,
			code:   apierr.CodeInvalidPlacement,
		},
		{
			name:   "non-letter",
			body:   map[string]any{"x": 7, "y": 7, "direction": "right", "word": "he11o"},
			status: http.StatusBadRequest,
			code:   apierr.CodeInvalidLetter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.createGame(t)
			ts.setHand(t, 0, "helloxy")

			rr := ts.request(http.MethodPost, "/api/v1/games/G1/moves", tt.body, "")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)

			// Rejected moves leave the game untouched
			rr = ts.request(http.MethodGet, "/api/v1/games/G1", nil, "")
			var g response.Game
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
			assert.True(t, g.FirstMove)
			assert.Equal(t, "Alice", g.CurrentPlayer)
		})
	}
}

func TestLetterMismatchRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)
	ts.playHello(t)
	ts.setHand(t, 1, "jellyab")

	rr := ts.request(http.MethodPost, "/api/v1/games/G1/moves", map[string]any{
		"x": 7, "y": 7, "direction": "right", "word": "jello",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeLetterMismatch, decodeError(t, rr).Code)
}

func TestIfMatchGuard(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createGame(t)
	ts.setHand(t, 0, "helloxy")

	rr := ts.request(http.MethodGet, "/api/v1/games/G1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	current := rr.Header().Get("ETag")
	assert.NotEqual(t, created, current)

	// The ETag from before the hand changed is stale
	move := map[string]any{"x": 7, "y": 7, "direction": "right", "word": "hello"}
	rr = ts.request(http.MethodPost, "/api/v1/games/G1/moves", move, created)
	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
	assert.Equal(t, apierr.CodeStaleGame, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/G1/moves", move, current)
	require.Equal(t, http.StatusOK, rr.Code)
	next := rr.Header().Get("ETag")
	assert.NotEqual(t, current, next)

	// Replaying with the consumed ETag fails
	rr = ts.request(http.MethodPost, "/api/v1/games/G1/skip", nil, current)
	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/G1/skip", nil, next)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCell(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)
	ts.playHello(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/G1/cells/11/7", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var cell response.Cell
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cell))
	assert.Equal(t, "o", cell.Letter)
	assert.Equal(t, "double_letter", cell.Premium)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1/cells/0/0", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var empty response.Cell
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.Empty(t, empty.Letter)
	assert.Equal(t, "triple_word", empty.Premium)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1/cells/15/0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeOutOfBounds, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1/cells/a/0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHand(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)
	ts.setHand(t, 0, "abc?")

	rr := ts.request(http.MethodGet, "/api/v1/games/G1/hand", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var hand response.Hand
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hand))
	assert.Equal(t, "Alice", hand.Player)
	assert.Equal(t, []string{"A", "B", "C", "?"}, hand.Tiles)
}

func TestScores(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/G1/scores", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var scores response.Scores
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Nil(t, scores.Winner)

	ts.playHello(t)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1/scores", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	require.NotNil(t, scores.Winner)
	assert.Equal(t, "Alice", *scores.Winner)
	assert.Equal(t, "Bob", scores.CurrentPlayer)
	assert.Equal(t, 1, scores.Standings[0].Rank)
	assert.Equal(t, 9, scores.Standings[0].Score)
}

func TestSkipUndoRedo(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/G1/undo", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNothingToUndo, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/G1/skip", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var g response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.Equal(t, "Bob", g.CurrentPlayer)
	require.Len(t, g.Moves, 1)
	assert.Equal(t, "skip", g.Moves[0].Kind)

	rr = ts.request(http.MethodPost, "/api/v1/games/G1/undo", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.Equal(t, "Alice", g.CurrentPlayer)
	assert.Empty(t, g.Moves)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1/history", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"undo":0,"redo":1}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/games/G1/redo", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.Equal(t, "Bob", g.CurrentPlayer)

	rr = ts.request(http.MethodPost, "/api/v1/games/G1/redo", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNothingToRedo, decodeError(t, rr).Code)
}

func TestReset(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)
	ts.playHello(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/G1/reset", map[string]bool{"keep_scores": true}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var g response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.True(t, g.FirstMove)
	assert.Equal(t, 9, g.Players[0].Score)
	assert.Equal(t, "...............", g.Board.Tiles[7])

	// Empty body resets scores too
	rr = ts.request(http.MethodPost, "/api/v1/games/G1/reset", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.Equal(t, 0, g.Players[0].Score)
	assert.Equal(t, "Alice", g.Players[0].Name)
}

func TestResetRejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)
	ts.playHello(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/G1/reset", map[string]string{"keep_scores": "yes"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1", nil, "")
	var g response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.False(t, g.FirstMove)
	assert.Equal(t, 9, g.Players[0].Score)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t)

	rr := ts.request(http.MethodDelete, "/api/v1/games/G1", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/G1", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/games/G1", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
