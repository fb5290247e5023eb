package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidState  = errors.New("invalid game state")
	ErrStateNotFound = errors.New("game state not found")
)
