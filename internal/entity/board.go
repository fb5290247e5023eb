package entity

import (
	"encoding/json"
	"fmt"
)

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""

	BoardSize = 9
)

const (
	statusWinner  = "Winner: %s"
	statusScratch = "Scratch: Cat's game"
	statusNext    = "Next player: %s"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the content of a single cell. The empty mark is encoded as JSON null.
type Mark string

func (that Mark) IsValid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

func (that Mark) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return []byte("null"), nil
	}

	if !that.IsValid() {
		return nil, fmt.Errorf("unknown mark %q", string(that))
	}

	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal mark: %w", err)
	}

	if raw == nil {
		*that = EmptyCell
		return nil
	}

	mark := Mark(*raw)
	if mark == EmptyCell || !mark.IsValid() {
		return fmt.Errorf("unknown mark %q", *raw)
	}

	*that = mark

	return nil
}

// Board is one snapshot of the grid, cells numbered row by row from 0 to 8.
type Board [BoardSize]Mark

// WithMark returns a copy of the board with cell set to mark.
func (that Board) WithMark(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) Filled() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

func (that Board) IsFull() bool {
	return that.Filled() == BoardSize
}

// NextMover - X moves on an even number of filled cells, O on an odd one.
func (that Board) NextMover() Mark {
	if that.Filled()%2 == 0 {
		return PlayerX
	}

	return PlayerO
}

// WinningLine - returns the first line holding three equal marks.
func (that Board) WinningLine() ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that Board) Winner() Mark {
	line, ok := that.WinningLine()
	if !ok {
		return EmptyCell
	}

	return that[line[0]]
}

func (that Board) Status() string {
	return Status(that.Winner(), that, that.NextMover())
}

// Status - builds the line shown above the board.
func Status(winner Mark, board Board, next Mark) string {
	switch {
	case winner != EmptyCell:
		return fmt.Sprintf(statusWinner, winner)
	case board.IsFull():
		return statusScratch
	default:
		return fmt.Sprintf(statusNext, next)
	}
}
