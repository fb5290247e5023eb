package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yml"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe with a time-travel history",
		Long: heredoc.Doc(`tictactoe keeps one game of tic-tac-toe together with every
			board it went through. Any earlier board can be brought back
			with jump, and a move made from there replaces the moves
			that came after it.

			The game is saved after every change, so each command picks
			up where the previous one left off. Cells are numbered 1-9,
			row by row from the top-left corner.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", defaultConfigPath, "Path to the config file")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log at the configured level instead of warnings only")

	root.AddCommand(Serve())
	root.AddCommand(Play())
	root.AddCommand(Show())
	root.AddCommand(Move())
	root.AddCommand(Jump())
	root.AddCommand(Restart())
	root.AddCommand(Forget())

	return root
}
