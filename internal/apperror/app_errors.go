package apperror

import "errors"

var (
	ErrNotFound      = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrUnauthorized  = errors.New("you are not in this game")
	ErrGameFinished  = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrIllegalMove   = errors.New("illegal move")

	ErrInvalidCell    = errors.New("cell index must be between 0 and 8")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConflict       = errors.New("game was updated concurrently, try again")
	ErrRoomCodeTaken  = errors.New("room code is already taken")
)
