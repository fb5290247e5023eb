package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

var errDiskFull = errors.New("disk full")

type brokenRepo struct{}

func (brokenRepo) Get(context.Context) (*entity.GameState, error) { return nil, errDiskFull }
func (brokenRepo) Save(context.Context, *entity.GameState) error  { return errDiskFull }
func (brokenRepo) Delete(context.Context) error                   { return errDiskFull }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewFileStateRepository(t.TempDir(), "tictactoe:state"))

	return New(logger, manager).Handler()
}

func do(t *testing.T, handler http.Handler, method, path, body string) (int, Payload) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var payload Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	return rec.Code, payload
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestGameHandler(t *testing.T) {
	t.Run("New game", func(t *testing.T) {
		handler := newTestServer(t)

		code, payload := do(t, handler, http.MethodGet, "/api/game", "")

		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, payload.Game)
		assert.Equal(t, "Next player: X", payload.Game.Status)
		assert.Equal(t, 1, payload.Game.HistoryLength)
		assert.Empty(t, payload.Error)
	})

	t.Run("Move, jump and branch", func(t *testing.T) {
		// Given: X in the center and O in the corner
		handler := newTestServer(t)

		code, _ := do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":4}`)
		require.Equal(t, http.StatusOK, code)
		code, payload := do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":0}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, entity.PlayerO, payload.Game.Board[0])
		assert.Equal(t, 3, payload.Game.HistoryLength)

		// When: jumping back to move #1
		code, payload = do(t, handler, http.MethodPost, "/api/game/jump", `{"step":1}`)

		// Then: the future is still listed
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, payload.Game.CurrentStep)
		assert.Equal(t, 3, payload.Game.HistoryLength)
		assert.Equal(t, entity.EmptyCell, payload.Game.Board[0])

		// When: O moves somewhere else
		code, payload = do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":8}`)

		// Then: the old move #2 is gone
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 2, payload.Game.CurrentStep)
		assert.Equal(t, 3, payload.Game.HistoryLength)
		assert.Equal(t, entity.PlayerO, payload.Game.Board[8])
		assert.Equal(t, entity.EmptyCell, payload.Game.Board[0])
	})

	t.Run("Restart", func(t *testing.T) {
		handler := newTestServer(t)
		do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":4}`)

		code, payload := do(t, handler, http.MethodPost, "/api/game/restart", "")

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, payload.Game.HistoryLength)
		assert.Equal(t, entity.Board{}, payload.Game.Board)
	})
}

func TestGameHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		errMsg string
	}{
		{name: "Occupied cell", path: "/api/game/moves", body: `{"cell":4}`, status: http.StatusConflict, errMsg: "occupied"},
		{name: "Cell out of range", path: "/api/game/moves", body: `{"cell":9}`, status: http.StatusBadRequest, errMsg: "invalid cell"},
		{name: "Missing cell", path: "/api/game/moves", body: `{}`, status: http.StatusBadRequest, errMsg: "cell is required"},
		{name: "Broken body", path: "/api/game/moves", body: `{"cell":`, status: http.StatusBadRequest, errMsg: "cell is required"},
		{name: "Step out of range", path: "/api/game/jump", body: `{"step":7}`, status: http.StatusBadRequest, errMsg: "invalid history step"},
		{name: "Missing step", path: "/api/game/jump", body: `{"cell":1}`, status: http.StatusBadRequest, errMsg: "step is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: X in the center
			handler := newTestServer(t)
			code, _ := do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":4}`)
			require.Equal(t, http.StatusOK, code)

			// When: sending the bad request
			code, payload := do(t, handler, http.MethodPost, tt.path, tt.body)

			// Then: the error comes with the unchanged game
			assert.Equal(t, tt.status, code)
			assert.Contains(t, payload.Error, tt.errMsg)
			require.NotNil(t, payload.Game)
			assert.Equal(t, 1, payload.Game.CurrentStep)
			assert.Equal(t, entity.PlayerX, payload.Game.Board[4])
		})
	}

	t.Run("Finished game", func(t *testing.T) {
		// Given: X wins on the top row
		handler := newTestServer(t)
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			code, _ := do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":`+cell+`}`)
			require.Equal(t, http.StatusOK, code)
		}

		// When: O tries to keep playing
		code, payload := do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":8}`)

		// Then: the game is reported as finished
		assert.Equal(t, http.StatusConflict, code)
		assert.Contains(t, payload.Error, "finished")
		assert.Equal(t, "Winner: X", payload.Game.Status)
		assert.Equal(t, []int{0, 1, 2}, payload.Game.WinningLine)
	})

	t.Run("Storage failure", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler := New(logger, usecase.NewGameManager(logger, brokenRepo{})).Handler()

		code, payload := do(t, handler, http.MethodPost, "/api/game/moves", `{"cell":4}`)

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Contains(t, payload.Error, "disk full")
		assert.Equal(t, entity.Board{}, payload.Game.Board)
	})
}
