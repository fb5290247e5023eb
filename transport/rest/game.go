package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type gameManager interface {
	View() entity.GameView

	MakeTurn(ctx context.Context, cell int) (entity.GameState, error)
	JumpTo(ctx context.Context, step int) (entity.GameState, error)
	Restart(ctx context.Context) (entity.GameState, error)
}

// Payload is the body of every game response.
type Payload struct {
	Game  *entity.GameView `json:"game,omitempty"`
	Error string           `json:"error,omitempty"`
}

// TurnRequest - cell is 0-based, row by row.
type TurnRequest struct {
	Cell *int `json:"cell"`
}

type JumpRequest struct {
	Step *int `json:"step"`
}

type gameHandler struct {
	logger *slog.Logger
	game   gameManager
}

func newGameHandler(logger *slog.Logger, game gameManager) *gameHandler {
	return &gameHandler{
		logger: logger,
		game:   game,
	}
}

func (that *gameHandler) getGame(w http.ResponseWriter, _ *http.Request) {
	that.respond(w, http.StatusOK, "")
}

func (that *gameHandler) makeTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "makeTurn")

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.respond(w, http.StatusBadRequest, "cell is required")
		return
	}

	if _, err := that.game.MakeTurn(r.Context(), *req.Cell); err != nil {
		log.Info("turn rejected", "cell", *req.Cell, "error", err)
		that.respond(w, statusFor(err), err.Error())
		return
	}

	that.respond(w, http.StatusOK, "")
}

func (that *gameHandler) jumpTo(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "jumpTo")

	var req JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Step == nil {
		that.respond(w, http.StatusBadRequest, "step is required")
		return
	}

	if _, err := that.game.JumpTo(r.Context(), *req.Step); err != nil {
		log.Info("jump rejected", "step", *req.Step, "error", err)
		that.respond(w, statusFor(err), err.Error())
		return
	}

	that.respond(w, http.StatusOK, "")
}

func (that *gameHandler) restart(w http.ResponseWriter, r *http.Request) {
	if _, err := that.game.Restart(r.Context()); err != nil {
		that.logger.Error("failed to restart game", "error", err)
		that.respond(w, statusFor(err), err.Error())
		return
	}

	that.respond(w, http.StatusOK, "")
}

// respond always carries the current game, also next to an error.
func (that *gameHandler) respond(w http.ResponseWriter, status int, errorMsg string) {
	game := that.game.View()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(Payload{Game: &game, Error: errorMsg}); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tictactoe.ErrInvalidCell), errors.Is(err, tictactoe.ErrInvalidStep):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
