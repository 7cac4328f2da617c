package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrGameNotReady    = errors.New("game is not ready")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell coordinates")
	ErrSessionNotFound = errors.New("session not found")
)
