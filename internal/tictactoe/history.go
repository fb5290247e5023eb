package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidStep = errors.New("invalid history step")
)

// Restart - returns the default state.
func Restart() entity.GameState {
	return entity.NewGameState()
}

// AdvanceMove - places the next mover's mark at cell on the active snapshot.
// Moving after a jump drops every snapshot past the current step.
// On error the returned state is the input state.
func AdvanceMove(state entity.GameState, cell int) (entity.GameState, error) {
	if cell < 0 || cell >= entity.BoardSize {
		return state, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if err := state.Validate(); err != nil {
		return state, fmt.Errorf("invalid turn: %w", err)
	}

	current := state.Current()

	if current.Winner() != entity.EmptyCell {
		return state, apperror.ErrGameFinished
	}

	if current[cell] != entity.EmptyCell {
		return state, apperror.ErrCellOccupied
	}

	// a fresh slice, so a pruned future is never overwritten in the caller's array
	history := make([]entity.Board, state.CurrentStep+2)
	copy(history, state.History[:state.CurrentStep+1])
	history[len(history)-1] = current.WithMark(cell, current.NextMover())

	return entity.GameState{
		History:     history,
		CurrentStep: len(history) - 1,
	}, nil
}

// JumpToStep - moves the cursor; history is left as is.
func JumpToStep(state entity.GameState, step int) (entity.GameState, error) {
	if step < 0 || step >= len(state.History) {
		return state, fmt.Errorf("%w: step %d out of range [0, %d)", ErrInvalidStep, step, len(state.History))
	}

	return entity.GameState{
		History:     state.History,
		CurrentStep: step,
	}, nil
}

// Moves - lists every snapshot of the history together with the cell filled to reach it.
func Moves(state entity.GameState) []entity.Move {
	moves := make([]entity.Move, 0, len(state.History))

	for step := range state.History {
		if step == 0 {
			moves = append(moves, entity.Move{Step: 0, Cell: -1})
			continue
		}

		move := entity.Move{Step: step, Cell: -1}

		previous, board := state.History[step-1], state.History[step]
		for cell := range board {
			if previous[cell] == entity.EmptyCell && board[cell] != entity.EmptyCell {
				move.Cell = cell
				move.Mark = board[cell]
				move.Row, move.Col = entity.CellPosition(cell)
				break
			}
		}

		moves = append(moves, move)
	}

	return moves
}

// View - derives everything the views display from the state.
func View(state entity.GameState) entity.GameView {
	current := state.Current()
	winner := current.Winner()

	view := entity.GameView{
		Board:         current,
		CurrentStep:   state.CurrentStep,
		HistoryLength: len(state.History),
		Winner:        winner,
		Status:        entity.Status(winner, current, current.NextMover()),
		Moves:         Moves(state),
	}

	if line, ok := current.WinningLine(); ok {
		view.WinningLine = line[:]
	}

	if winner == entity.EmptyCell && !current.IsFull() {
		view.NextPlayer = current.NextMover()
	}

	return view
}
