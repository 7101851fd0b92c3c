package entity

import (
	"slices"
	"time"
)

// Game is the authoritative record of one remote game.
type Game struct {
	ID          string    `json:"id"`
	RoomCode    string    `json:"roomCode"`
	State       Board     `json:"state"`
	History     []Board   `json:"history"`
	Turn        Mark      `json:"turn"`
	Winner      Outcome   `json:"winner"`
	WinningLine []int     `json:"winningLine"`
	PlayerX     PlayerID  `json:"playerX"`
	PlayerO     PlayerID  `json:"playerO"`
	CreatedAt   time.Time `json:"createdAt"`

	// Version is bumped by the store on every write and guards read-modify-write cycles.
	Version int64 `json:"-"`
}

// GameState holds the fields replaced by a move or an undo.
type GameState struct {
	State       Board
	History     []Board
	Turn        Mark
	Winner      Outcome
	WinningLine []int
}

// NewGame returns a fresh record hosted by hostID. X always opens a remote game.
func NewGame(id, roomCode, hostID string, createdAt time.Time) *Game {
	return &Game{
		ID:        id,
		RoomCode:  roomCode,
		State:     Board{},
		History:   []Board{{}},
		Turn:      MarkX,
		Winner:    OutcomeNone,
		PlayerX:   PlayerID(hostID),
		CreatedAt: createdAt,
	}
}

func (that *Game) IsFinished() bool {
	return that.Winner.IsTerminal()
}

// CanUndo reports whether there is a move above the initial snapshot.
func (that *Game) CanUndo() bool {
	return len(that.History) > 1
}

func (that *Game) HasJoiner() bool {
	return that.PlayerO != ""
}

// IsParticipant reports whether playerID is the host or the joiner.
func (that *Game) IsParticipant(playerID string) bool {
	if playerID == "" {
		return false
	}

	return string(that.PlayerX) == playerID || string(that.PlayerO) == playerID
}

// Controls reports whether playerID may place mark.
func (that *Game) Controls(playerID string, mark Mark) bool {
	if playerID == "" {
		return false
	}

	switch mark {
	case MarkX:
		return string(that.PlayerX) == playerID
	case MarkO:
		return string(that.PlayerO) == playerID
	default:
		return false
	}
}

// Snapshot returns the mutable fields as a GameState.
func (that *Game) Snapshot() GameState {
	return GameState{
		State:       that.State,
		History:     slices.Clone(that.History),
		Turn:        that.Turn,
		Winner:      that.Winner,
		WinningLine: slices.Clone(that.WinningLine),
	}
}

// Apply replaces the mutable fields with state.
func (that *Game) Apply(state GameState) {
	that.State = state.State
	that.History = slices.Clone(state.History)
	that.Turn = state.Turn
	that.Winner = state.Winner
	that.WinningLine = slices.Clone(state.WinningLine)
}

// Clone returns a deep copy that shares no slices with the receiver.
func (that *Game) Clone() *Game {
	clone := *that
	clone.History = slices.Clone(that.History)
	clone.WinningLine = slices.Clone(that.WinningLine)

	return &clone
}
