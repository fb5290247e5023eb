package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-history/internal"
)

func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP and WebSocket",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := application.NewLogger(cmd.OutOrStdout(), conf.LogLevel, true)

			if err = application.RunApp(logger, conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}
}
