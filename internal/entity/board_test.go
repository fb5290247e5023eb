package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_NextMover(t *testing.T) {
	t.Run("Alternates with the number of filled cells", func(t *testing.T) {
		// Given: a board filled one cell at a time
		var board Board
		marks := []Mark{PlayerX, PlayerO}

		for filled := 0; filled < BoardSize; filled++ {
			// Then: the next mover depends only on the parity of the count
			expected := marks[filled%2]
			require.Equal(t, expected, board.NextMover(), "filled=%d", filled)

			board = board.WithMark(filled, expected)
		}
	})

	t.Run("Order of filled cells does not matter", func(t *testing.T) {
		// Given: two boards with the same count in different cells
		a := Board{PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, PlayerO}
		b := Board{EmptyCell, EmptyCell, PlayerO, EmptyCell, PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

		// Then: both are X to move
		assert.Equal(t, PlayerX, a.NextMover())
		assert.Equal(t, PlayerX, b.NextMover())
	})
}

func TestBoard_WithMark(t *testing.T) {
	// Given: an empty board
	var board Board

	// When: a copy with X in the center is made
	next := board.WithMark(4, PlayerX)

	// Then: the original board is untouched
	assert.Equal(t, Board{}, board)
	assert.Equal(t, PlayerX, next[4])
}

func TestBoard_Winner(t *testing.T) {
	t.Run("Every line wins", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: O on all three cells of the line
			var board Board
			for _, cell := range combo {
				board[cell] = PlayerO
			}

			// Then: O is the winner on that line
			line, ok := board.WinningLine()
			require.True(t, ok)
			assert.Equal(t, combo, line)
			assert.Equal(t, PlayerO, board.Winner())
		}
	})

	t.Run("Mixed line does not win", func(t *testing.T) {
		// Given: a board where no line holds three equal marks
		board := Board{
			PlayerX, PlayerO, PlayerX,
			EmptyCell, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
		}

		// Then: there is no winner
		_, ok := board.WinningLine()
		assert.False(t, ok)
		assert.Equal(t, EmptyCell, board.Winner())
	})
}

func TestStatus(t *testing.T) {
	t.Run("Winner", func(t *testing.T) {
		// Given: X completed the left column
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			PlayerX, PlayerO, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		// Then: X is reported as the winner
		assert.Equal(t, "Winner: X", board.Status())
	})

	t.Run("Scratch", func(t *testing.T) {
		// Given: a full board with no winner
		board := Board{
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerX,
		}

		// Then: the game is reported as a cat's game
		assert.Equal(t, "Scratch: Cat's game", board.Status())
	})

	t.Run("Next player", func(t *testing.T) {
		// Given: one mark on the board
		board := Board{}.WithMark(0, PlayerX)

		// Then: O is next
		assert.Equal(t, "Next player: O", board.Status())
	})

	t.Run("Winner on a full board", func(t *testing.T) {
		// Given: the last move both fills the board and wins
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// Then: the winner takes precedence over scratch
		assert.Equal(t, "Winner: X", Status(board.Winner(), board, board.NextMover()))
	})
}

func TestMark_JSON(t *testing.T) {
	t.Run("Empty mark is null", func(t *testing.T) {
		data, err := json.Marshal(Board{}.WithMark(2, PlayerO))
		require.NoError(t, err)

		assert.JSONEq(t, `[null,null,"O",null,null,null,null,null,null]`, string(data))
	})

	t.Run("Unknown mark is rejected", func(t *testing.T) {
		var mark Mark

		err := json.Unmarshal([]byte(`"Z"`), &mark)
		require.Error(t, err)

		err = json.Unmarshal([]byte(`""`), &mark)
		require.Error(t, err)
	})
}
