package apperror

import "errors"

// Code is the stable token sent next to an error message.
type Code string

const (
	CodeNotFound       Code = "NOT_FOUND"
	CodeRoomFull       Code = "ROOM_FULL"
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeGameOver       Code = "GAME_OVER"
	CodeWrongTurn      Code = "WRONG_TURN"
	CodeCellOccupied   Code = "CELL_OCCUPIED"
	CodeNothingToUndo  Code = "NOTHING_TO_UNDO"
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeConflict       Code = "CONFLICT"
	CodeInternal       Code = "INTERNAL"
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrNotFound, CodeNotFound},
	{ErrRoomFull, CodeRoomFull},
	{ErrUnauthorized, CodeUnauthorized},
	{ErrGameFinished, CodeGameOver},
	{ErrNotYourTurn, CodeWrongTurn},
	{ErrCellOccupied, CodeCellOccupied},
	{ErrNothingToUndo, CodeNothingToUndo},
	{ErrInvalidRequest, CodeInvalidRequest},
	{ErrInvalidCell, CodeInvalidRequest},
	{ErrConflict, CodeConflict},
}

// CodeOf returns the code of the first known error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	for _, known := range codes {
		if errors.Is(err, known.err) {
			return known.code
		}
	}

	return CodeInternal
}

// FromCode maps a code back to its error. Unknown codes return nil.
func FromCode(code Code) error {
	for _, known := range codes {
		if known.code == code {
			return known.err
		}
	}

	return nil
}
