package tictactoe

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// BotCell - picks one of the free cells of board. pick(n) must return a value in [0, n).
func BotCell(board entity.Board, pick func(n int) int) (int, error) {
	availableCells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[pick(len(availableCells))], nil
}

// AdvanceBotMove - lets the computer make the next move on the active snapshot.
func AdvanceBotMove(state entity.GameState, pick func(n int) int) (entity.GameState, error) {
	if err := state.Validate(); err != nil {
		return state, err
	}

	board := state.Current()
	if board.Winner() != entity.EmptyCell {
		return state, apperror.ErrGameFinished
	}

	cell, err := BotCell(board, pick)
	if err != nil {
		return state, err
	}

	return AdvanceMove(state, cell)
}
