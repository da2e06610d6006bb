package apperror

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrTerminalBoard = errors.New("board is terminal")
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
)
