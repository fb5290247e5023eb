package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

var playHelp = heredoc.Doc(`
	1-9        place the next mark on that cell
	b          let the computer place the next mark
	j <step>   jump to a move from the history
	r          restart the game
	h          show this help
	q          quit
`)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Long: heredoc.Docf(`play reads one command per line and shows the board after
			each of them. The game is saved after every change.

			Commands:
			%s`, playHelp),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			defer func() {
				if closeErr := s.closeStorage(); closeErr != nil {
					s.logger.Error("could not close storage", "error", closeErr)
				}
			}()

			if err = s.render(); err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for prompt(s); scanner.Scan(); prompt(s) {
				quit, playErr := playLine(cmd, s, strings.Fields(scanner.Text()))
				if quit {
					return nil
				}

				if playErr != nil {
					s.terminal.RenderError(s.out, playErr)
					continue
				}

				if err = s.render(); err != nil {
					return err
				}
			}

			if err = scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return nil
		},
	}
}

func prompt(s *session) {
	fmt.Fprint(s.out, "> ")
}

// playLine - runs one line of input and reports whether the player wants to quit.
func playLine(cmd *cobra.Command, s *session, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return true, nil

	case "h", "help", "?":
		fmt.Fprint(s.out, playHelp)
		return false, nil

	case "b", "bot":
		_, err := s.manager.BotTurn(cmd.Context())
		return false, err

	case "r", "restart":
		_, err := s.manager.Restart(cmd.Context())
		return false, err

	case "j", "jump":
		if len(fields) != 2 {
			return false, fmt.Errorf("%w: usage j <step>", tictactoe.ErrInvalidStep)
		}

		step, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a number", tictactoe.ErrInvalidStep, fields[1])
		}

		_, err = s.manager.JumpTo(cmd.Context(), step)

		return false, err

	default:
		cell, err := parseCell(fields[0])
		if err != nil {
			return false, err
		}

		_, err = s.manager.MakeTurn(cmd.Context(), cell)

		return false, err
	}
}
