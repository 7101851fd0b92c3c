// Package tictactoe holds the pure board rules shared by local and remote play.
package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

// WinCombos lists rows, then columns, then diagonals. Evaluate reports the first completed one.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result is the evaluation of a board. Line is set only when a mark won.
type Result struct {
	Outcome entity.Outcome
	Line    []int
}

// Evaluate scans the winning lines, then checks for a full board.
func Evaluate(board entity.Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.MarkNone && a == b && b == c {
			return Result{
				Outcome: entity.OutcomeFor(a),
				Line:    []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	if board.IsFull() {
		return Result{Outcome: entity.OutcomeDraw}
	}

	return Result{Outcome: entity.OutcomeNone}
}

// Apply returns a copy of board with mark placed on cell. The input board is never modified.
func Apply(board entity.Board, cell int, mark entity.Mark) (entity.Board, error) {
	if cell < 0 || cell >= entity.BoardSize {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return board, fmt.Errorf("%w: unknown mark %q", apperror.ErrIllegalMove, mark)
	}

	if board[cell] != entity.MarkNone {
		return board, fmt.Errorf("%w: cell %d is already marked", apperror.ErrIllegalMove, cell)
	}

	next := board
	next[cell] = mark

	return next, nil
}

// Play places the mark whose turn it is and returns the following state.
// The turn always passes to the other mark, even when the move ends the game.
func Play(current entity.GameState, cell int) (entity.GameState, error) {
	next, err := Apply(current.State, cell, current.Turn)
	if err != nil {
		return current, err
	}

	result := Evaluate(next)

	history := make([]entity.Board, 0, len(current.History)+1)
	history = append(history, current.History...)
	history = append(history, next)

	return entity.GameState{
		State:       next,
		History:     history,
		Turn:        current.Turn.Opposite(),
		Winner:      result.Outcome,
		WinningLine: result.Line,
	}, nil
}

// Rewind drops the latest snapshot, hands the turn back and clears the outcome.
func Rewind(current entity.GameState) (entity.GameState, error) {
	if len(current.History) <= 1 {
		return current, apperror.ErrNothingToUndo
	}

	history := slices.Clone(current.History[:len(current.History)-1])

	return entity.GameState{
		State:   history[len(history)-1],
		History: history,
		Turn:    current.Turn.Opposite(),
		Winner:  entity.OutcomeNone,
	}, nil
}

// Initial returns the empty state with starter to move.
func Initial(starter entity.Mark) entity.GameState {
	return entity.GameState{
		State:   entity.Board{},
		History: []entity.Board{{}},
		Turn:    starter,
		Winner:  entity.OutcomeNone,
	}
}
