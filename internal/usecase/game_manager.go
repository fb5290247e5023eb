package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type stateRepo interface {
	Get(ctx context.Context) (*entity.GameState, error)
	Save(ctx context.Context, state *entity.GameState) error
	Delete(ctx context.Context) error
}

type transition func(state entity.GameState) (entity.GameState, error)

// GameManager owns the only mutable game state. Every committed change is
// written through to the repository while the lock is held, so a transition
// starts only after the previous write has finished.
type GameManager struct {
	logger    *slog.Logger
	stateRepo stateRepo

	mu        sync.Mutex
	state     entity.GameState
	listeners []func(entity.GameState)
}

func NewGameManager(logger *slog.Logger, stateRepo stateRepo) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		stateRepo: stateRepo,

		state: tictactoe.Restart(),
	}
}

// Restore - loads the persisted state. A missing, unparsable or invalid blob
// leaves the manager at the default state.
func (that *GameManager) Restore(ctx context.Context) entity.GameState {
	log := that.logger.With("method", "Restore")

	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.stateRepo.Get(ctx)
	switch {
	case errors.Is(err, apperror.ErrStateNotFound):
		log.Info("no saved game, starting a new one")
		that.state = tictactoe.Restart()
	case err != nil:
		log.Warn("saved game is unusable, starting a new one", "error", err)
		that.state = tictactoe.Restart()
	default:
		log.Info("saved game restored", "step", state.CurrentStep, "history", len(state.History))
		that.state = *state
	}

	return that.state
}

// OnChange registers fn to be called with every committed state, in commit order.
// fn runs under the manager's lock and must not call back into the manager.
func (that *GameManager) OnChange(fn func(entity.GameState)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listeners = append(that.listeners, fn)
}

func (that *GameManager) State() entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *GameManager) View() entity.GameView {
	return tictactoe.View(that.State())
}

func (that *GameManager) MakeTurn(ctx context.Context, cell int) (entity.GameState, error) {
	state, err := that.apply(ctx, func(state entity.GameState) (entity.GameState, error) {
		return tictactoe.AdvanceMove(state, cell)
	})
	if err != nil {
		return state, fmt.Errorf("failed make turn: %w", err)
	}

	return state, nil
}

// BotTurn - lets the computer place the next mark on a random free cell.
func (that *GameManager) BotTurn(ctx context.Context) (entity.GameState, error) {
	state, err := that.apply(ctx, func(state entity.GameState) (entity.GameState, error) {
		return tictactoe.AdvanceBotMove(state, rand.IntN)
	})
	if err != nil {
		return state, fmt.Errorf("failed bot turn: %w", err)
	}

	return state, nil
}

func (that *GameManager) JumpTo(ctx context.Context, step int) (entity.GameState, error) {
	state, err := that.apply(ctx, func(state entity.GameState) (entity.GameState, error) {
		return tictactoe.JumpToStep(state, step)
	})
	if err != nil {
		return state, fmt.Errorf("failed jump to step: %w", err)
	}

	return state, nil
}

func (that *GameManager) Restart(ctx context.Context) (entity.GameState, error) {
	state, err := that.apply(ctx, func(entity.GameState) (entity.GameState, error) {
		return tictactoe.Restart(), nil
	})
	if err != nil {
		return state, fmt.Errorf("failed restart game: %w", err)
	}

	return state, nil
}

// Forget - drops the saved game and resets to the default state without saving it.
func (that *GameManager) Forget(ctx context.Context) (entity.GameState, error) {
	log := that.logger.With("method", "Forget")

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.stateRepo.Delete(ctx); err != nil {
		return that.state, fmt.Errorf("failed to delete saved game: %w", err)
	}

	that.commit(tictactoe.Restart())
	log.Info("saved game deleted")

	return that.state, nil
}

// apply runs next on the current state and commits the result once it is saved.
// On any error the current state is kept and returned.
func (that *GameManager) apply(ctx context.Context, next transition) (entity.GameState, error) {
	log := that.logger.With("method", "apply")

	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := next(that.state)
	if err != nil {
		return that.state, err
	}

	if err = that.stateRepo.Save(ctx, &state); err != nil {
		log.Error("failed to save game", "error", err)
		return that.state, fmt.Errorf("failed to save game: %w", err)
	}

	that.commit(state)
	log.Debug("game saved", "step", state.CurrentStep, "history", len(state.History))

	return state, nil
}

func (that *GameManager) commit(state entity.GameState) {
	that.state = state

	for _, listener := range that.listeners {
		listener(state)
	}
}
