package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// StateRepository keeps the game state as one JSON blob under a fixed key.
type StateRepository interface {
	Get(ctx context.Context) (*entity.GameState, error)
	Save(ctx context.Context, state *entity.GameState) error
	Delete(ctx context.Context) error
}

// slot is a single key-value cell of some storage. read returns
// apperror.ErrStateNotFound when nothing is stored under key.
type slot interface {
	read(ctx context.Context, key string) ([]byte, error)
	write(ctx context.Context, key string, value []byte) error
	remove(ctx context.Context, key string) error
}

type dbState struct {
	slot slot
	key  string
}

func newStateRepository(slot slot, key string) StateRepository {
	return &dbState{
		slot: slot,
		key:  key,
	}
}

func (that *dbState) Get(ctx context.Context) (*entity.GameState, error) {
	response, err := that.slot.read(ctx, that.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read state %s: %w", that.key, err)
	}

	state, err := entity.ParseState(response)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal state %s: %w", that.key, err)
	}

	return &state, nil
}

func (that *dbState) Save(ctx context.Context, state *entity.GameState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("refusing to save state %s: %w", that.key, err)
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal state: %w", err)
	}

	if err = that.slot.write(ctx, that.key, stateJSON); err != nil {
		return fmt.Errorf("failed to set state %s: %w", that.key, err)
	}

	return nil
}

func (that *dbState) Delete(ctx context.Context) error {
	if err := that.slot.remove(ctx, that.key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", that.key, err)
	}

	return nil
}
