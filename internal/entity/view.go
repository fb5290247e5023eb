package entity

import "fmt"

const boardWidth = 3

// Move describes one entry of the history. Step 0 is the game start and has no cell.
type Move struct {
	Step int  `json:"step"`
	Cell int  `json:"cell"`
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

func (that Move) IsStart() bool {
	return that.Step == 0
}

func (that Move) Label() string {
	if that.IsStart() {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d", that.Step)
}

// GameView is what the views render: the active snapshot and everything derived from it.
type GameView struct {
	Board         Board  `json:"board"`
	CurrentStep   int    `json:"currentStep"`
	HistoryLength int    `json:"historyLength"`
	NextPlayer    Mark   `json:"nextPlayer"`
	Winner        Mark   `json:"winner"`
	WinningLine   []int  `json:"winningLine,omitempty"`
	Status        string `json:"status"`
	Moves         []Move `json:"moves"`
}

// CellPosition - converts a cell index into 1-based row and column.
func CellPosition(cell int) (int, int) {
	return cell/boardWidth + 1, cell%boardWidth + 1
}
