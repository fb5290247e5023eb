package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

// session is one command's view of the saved game.
type session struct {
	logger   *slog.Logger
	manager  *usecase.GameManager
	terminal *view.Terminal
	out      io.Writer

	closeStorage func() error
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to read config flag: %w", err)
	}

	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

func openSession(cmd *cobra.Command) (*session, error) {
	conf, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level := "warn"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = conf.LogLevel
	}

	logger := application.NewLogger(cmd.ErrOrStderr(), level, false)

	stateRepo, closeStorage, err := application.OpenStateRepository(cmd.Context(), conf)
	if err != nil {
		return nil, err
	}

	manager := usecase.NewGameManager(logger, stateRepo)
	manager.Restore(cmd.Context())

	noColor, _ := cmd.Flags().GetBool("no-color")

	return &session{
		logger:   logger.With("component", "cli"),
		manager:  manager,
		terminal: view.NewTerminal(noColor || color.NoColor),
		out:      cmd.OutOrStdout(),

		closeStorage: closeStorage,
	}, nil
}

// withSession opens the saved game, runs fn and always renders the board afterwards.
func withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		defer func() {
			if closeErr := s.closeStorage(); closeErr != nil {
				s.logger.Error("could not close storage", "error", closeErr)
			}
		}()

		runErr := fn(cmd, args, s)

		if err = s.render(); err != nil {
			return err
		}

		return runErr
	}
}

func (that *session) render() error {
	return that.terminal.Render(that.out, that.manager.View())
}
