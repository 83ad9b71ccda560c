package apperror

import "errors"

var (
	ErrOutOfRange      = errors.New("cell coordinates are out of range")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrInvalidPlayer   = errors.New("invalid player mark")
	ErrSessionNotFound = errors.New("session not found")
)
