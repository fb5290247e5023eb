package cmd

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

func Show() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the board and the move history",
		Args:  cobra.NoArgs,

		RunE: withSession(func(*cobra.Command, []string, *session) error {
			return nil
		}),
	}
}

func Move() *cobra.Command {
	return &cobra.Command{
		Use:   "move <cell>",
		Short: "Place the next mark on a cell (1-9)",
		Long: heredoc.Doc(`move places the next player's mark on the given cell of the
			board shown by show. Cells are numbered 1-9, row by row.

			If an earlier move was brought back with jump, the moves
			after it are dropped and the game continues from here.`),
		Args: cobra.ExactArgs(1),

		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			cell, err := parseCell(args[0])
			if err != nil {
				return err
			}

			_, err = s.manager.MakeTurn(cmd.Context(), cell)

			return err
		}),
	}
}

func Jump() *cobra.Command {
	return &cobra.Command{
		Use:   "jump <step>",
		Short: "Go back (or forward) to a move from the history",
		Long: heredoc.Doc(`jump shows the board as it was after the given move.
			Step 0 is the empty board. Nothing is dropped until the
			next move is made.`),
		Args: cobra.ExactArgs(1),

		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			step, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", tictactoe.ErrInvalidStep, args[0])
			}

			_, err = s.manager.JumpTo(cmd.Context(), step)

			return err
		}),
	}
}

func Restart() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Start a new game and drop the history",
		Args:  cobra.NoArgs,

		RunE: withSession(func(cmd *cobra.Command, _ []string, s *session) error {
			_, err := s.manager.Restart(cmd.Context())
			return err
		}),
	}
}

func Forget() *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete the saved game",
		Args:  cobra.NoArgs,

		RunE: withSession(func(cmd *cobra.Command, _ []string, s *session) error {
			_, err := s.manager.Forget(cmd.Context())
			return err
		}),
	}
}

// parseCell - converts a 1-based cell number into a board index.
func parseCell(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number < 1 || number > entity.BoardSize {
		return 0, fmt.Errorf("%w: %q, choose 1-%d", tictactoe.ErrInvalidCell, arg, entity.BoardSize)
	}

	return number - 1, nil
}
