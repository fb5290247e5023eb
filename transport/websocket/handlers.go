package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// Handlers return the error text for the client and an error worth logging.

func (that *Server) handleState(context.Context, *Message) (string, error) {
	return "", nil
}

func (that *Server) handleTurn(ctx context.Context, msg *Message) (string, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return "malformed payload", err
	}

	if req.Cell == nil {
		return "cell is required", nil
	}

	_, err = that.game.MakeTurn(ctx, *req.Cell)

	return rejection(err)
}

func (that *Server) handleJump(ctx context.Context, msg *Message) (string, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return "malformed payload", err
	}

	if req.Step == nil {
		return "step is required", nil
	}

	_, err = that.game.JumpTo(ctx, *req.Step)

	return rejection(err)
}

func (that *Server) handleRestart(ctx context.Context, _ *Message) (string, error) {
	_, err := that.game.Restart(ctx)

	return rejection(err)
}

func decodeRequest(msg *Message) (Request, error) {
	var req Request

	if len(msg.Payload) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return req, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return req, nil
}

// rejection splits err into what the client sees and what gets logged.
// Rule violations are expected and are not logged.
func rejection(err error) (string, error) {
	switch {
	case err == nil:
		return "", nil
	case errors.Is(err, tictactoe.ErrInvalidCell),
		errors.Is(err, tictactoe.ErrInvalidStep),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished):
		return err.Error(), nil
	default:
		return "failed to update game", err
	}
}
