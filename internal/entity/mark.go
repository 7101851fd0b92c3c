package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

const (
	OutcomeNone Outcome = ""
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "DRAW"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

var (
	ErrUnknownMark    = errors.New("unknown mark")
	ErrUnknownOutcome = errors.New("unknown outcome")
)

// Mark is the symbol a player puts on a cell. X is the Capybara, O is the Corgi.
type Mark string

// Opposite returns the other player's mark. MarkNone has no opposite.
func (that Mark) Opposite() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Name returns the mascot name shown to players.
func (that Mark) Name() string {
	switch that {
	case MarkX:
		return "Capybara"
	case MarkO:
		return "Corgi"
	default:
		return ""
	}
}

// MarshalJSON encodes an empty cell as null.
func (that Mark) MarshalJSON() ([]byte, error) {
	if that == MarkNone {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = MarkNone
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode mark: %w", err)
	}

	switch mark := Mark(raw); mark {
	case MarkX, MarkO, MarkNone:
		*that = mark
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, raw)
	}
}

// Board is the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// IsFull reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == MarkNone {
			return false
		}
	}

	return true
}

// Count returns the number of marked cells.
func (that Board) Count() int {
	count := 0
	for _, cell := range that {
		if cell != MarkNone {
			count++
		}
	}

	return count
}

// Swapped returns the board with X and O exchanged.
func (that Board) Swapped() Board {
	var swapped Board
	for i, cell := range that {
		swapped[i] = cell.Opposite()
	}

	return swapped
}

// Outcome is the result of a game. OutcomeNone means the game is still in progress.
type Outcome string

// OutcomeFor returns the winning outcome for a mark.
func OutcomeFor(mark Mark) Outcome {
	switch mark {
	case MarkX:
		return OutcomeX
	case MarkO:
		return OutcomeO
	default:
		return OutcomeNone
	}
}

func (that Outcome) IsTerminal() bool {
	return that != OutcomeNone
}

func (that Outcome) IsDraw() bool {
	return that == OutcomeDraw
}

// Winner returns the winning mark, or MarkNone for a draw or an unfinished game.
func (that Outcome) Winner() Mark {
	switch that {
	case OutcomeX:
		return MarkX
	case OutcomeO:
		return MarkO
	default:
		return MarkNone
	}
}

// Swapped relabels the winner, leaving draw and in-progress untouched.
func (that Outcome) Swapped() Outcome {
	if winner := that.Winner(); winner != MarkNone {
		return OutcomeFor(winner.Opposite())
	}

	return that
}

// Describe returns the status line for a finished game.
func (that Outcome) Describe() string {
	switch that {
	case OutcomeDraw:
		return "It's a tie!"
	case OutcomeX, OutcomeO:
		return that.Winner().Name() + " wins!"
	default:
		return ""
	}
}

func (that Outcome) MarshalJSON() ([]byte, error) {
	if that == OutcomeNone {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Outcome) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = OutcomeNone
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode outcome: %w", err)
	}

	switch outcome := Outcome(raw); outcome {
	case OutcomeX, OutcomeO, OutcomeDraw, OutcomeNone:
		*that = outcome
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, raw)
	}
}
