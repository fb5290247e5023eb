package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	rowSeparator = "---+---+---"
	cellsPerRow  = 3
)

// Terminal renders a game view as text.
type Terminal struct {
	x       *color.Color
	o       *color.Color
	winning *color.Color
	hint    *color.Color
	current *color.Color
	failure *color.Color
}

func NewTerminal(noColor bool) *Terminal {
	terminal := &Terminal{
		x:       color.New(color.FgBlue, color.Bold),
		o:       color.New(color.FgRed, color.Bold),
		winning: color.New(color.FgBlack, color.BgGreen, color.Bold),
		hint:    color.New(color.Faint),
		current: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}

	for _, c := range []*color.Color{terminal.x, terminal.o, terminal.winning, terminal.hint, terminal.current, terminal.failure} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return terminal
}

// Render - writes the status line, the board and the move list.
func (that *Terminal) Render(w io.Writer, game entity.GameView) error {
	var out strings.Builder

	out.WriteString(game.Status)
	out.WriteString("\n\n")

	winning := make(map[int]bool, len(game.WinningLine))
	for _, cell := range game.WinningLine {
		winning[cell] = true
	}

	for row := 0; row < cellsPerRow; row++ {
		if row > 0 {
			out.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 0, cellsPerRow)
		for col := 0; col < cellsPerRow; col++ {
			cell := row*cellsPerRow + col
			cells = append(cells, " "+that.cell(cell, game.Board[cell], winning[cell])+" ")
		}

		out.WriteString(strings.Join(cells, "|") + "\n")
	}

	out.WriteString("\n")

	for _, move := range game.Moves {
		out.WriteString(that.move(move, move.Step == game.CurrentStep) + "\n")
	}

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

// RenderError - prints err on its own line.
func (that *Terminal) RenderError(w io.Writer, err error) {
	fmt.Fprintln(w, that.failure.Sprint(err.Error()))
}

func (that *Terminal) cell(index int, mark entity.Mark, winning bool) string {
	switch {
	case mark == entity.EmptyCell:
		// cells are numbered from 1 for people
		return that.hint.Sprint(index + 1)
	case winning:
		return that.winning.Sprint(string(mark))
	case mark == entity.PlayerX:
		return that.x.Sprint(string(mark))
	default:
		return that.o.Sprint(string(mark))
	}
}

func (that *Terminal) move(move entity.Move, isCurrent bool) string {
	label := move.Label()

	// the current step is shown as a position, not as something to jump to
	if isCurrent {
		label = "You are at game start"
		if !move.IsStart() {
			label = fmt.Sprintf("You are at move #%d", move.Step)
		}
	}

	if !move.IsStart() {
		label += fmt.Sprintf(" (%s at row %d, col %d)", move.Mark, move.Row, move.Col)
	}

	line := fmt.Sprintf("%2d. %s", move.Step, label)
	if isCurrent {
		return that.current.Sprint("> " + line)
	}

	return "  " + line
}
