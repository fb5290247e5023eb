package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

// GameState is the history of snapshots plus the cursor selecting the active one.
type GameState struct {
	History     []Board `json:"history"`
	CurrentStep int     `json:"currentStep"`
}

// persistedState mirrors GameState with every field optional, so that missing
// or mistyped values are caught by validation instead of being zeroed.
type persistedState struct {
	History     [][]*string `json:"history"`
	CurrentStep *int        `json:"currentStep"`
}

// NewGameState - returns the state of a game nobody has moved in yet.
func NewGameState() GameState {
	return GameState{
		History:     []Board{{}},
		CurrentStep: 0,
	}
}

// Current returns the active snapshot. The state must be valid.
func (that GameState) Current() Board {
	return that.History[that.CurrentStep]
}

func (that GameState) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: history is empty", apperror.ErrInvalidState)
	}

	if that.CurrentStep < 0 || that.CurrentStep >= len(that.History) {
		return fmt.Errorf("%w: current step %d out of range [0, %d)", apperror.ErrInvalidState, that.CurrentStep, len(that.History))
	}

	for step, board := range that.History {
		for cell, mark := range board {
			if !mark.IsValid() {
				return fmt.Errorf("%w: step %d cell %d has unknown mark %q", apperror.ErrInvalidState, step, cell, string(mark))
			}
		}
	}

	return nil
}

// ParseState - decodes a persisted blob and checks its shape.
func ParseState(data []byte) (GameState, error) {
	var raw persistedState
	if err := json.Unmarshal(data, &raw); err != nil {
		return GameState{}, fmt.Errorf("%w: %w", apperror.ErrInvalidState, err)
	}

	if raw.CurrentStep == nil {
		return GameState{}, fmt.Errorf("%w: current step is missing", apperror.ErrInvalidState)
	}

	history := make([]Board, 0, len(raw.History))
	for step, cells := range raw.History {
		if len(cells) != BoardSize {
			return GameState{}, fmt.Errorf("%w: step %d has %d cells", apperror.ErrInvalidState, step, len(cells))
		}

		var board Board
		for cell, value := range cells {
			if value == nil {
				continue
			}

			mark := Mark(*value)
			if mark == EmptyCell || !mark.IsValid() {
				return GameState{}, fmt.Errorf("%w: step %d cell %d has unknown mark %q", apperror.ErrInvalidState, step, cell, *value)
			}

			board[cell] = mark
		}

		history = append(history, board)
	}

	state := GameState{
		History:     history,
		CurrentStep: *raw.CurrentStep,
	}

	if err := state.Validate(); err != nil {
		return GameState{}, err
	}

	return state, nil
}

// IsValidState reports whether data is a well-formed persisted game state.
func IsValidState(data []byte) bool {
	_, err := ParseState(data)
	return err == nil
}

func (that *GameState) UnmarshalJSON(data []byte) error {
	state, err := ParseState(data)
	if err != nil {
		return err
	}

	*that = state

	return nil
}
