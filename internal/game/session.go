// Package game drives pass-and-play sessions where both players share one device.
package game

import (
	"slices"

	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
	"github.com/rocketscienceinc/capycorgi-backend/internal/tictactoe"
)

const (
	// EventGameOver fires once when a game reaches a win or a draw.
	EventGameOver EventType = "game_over"
	// EventCelebrate fires once on a win, unless reduced motion is preferred.
	EventCelebrate EventType = "celebrate"
)

type EventType string

// Event is delivered to subscribers on terminal transitions.
type Event struct {
	Type    EventType
	Outcome entity.Outcome
	Line    []int
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	Board       entity.Board
	Turn        entity.Mark
	Outcome     entity.Outcome
	WinningLine []int
	HistoryLen  int
	Starter     entity.Mark
}

type Option func(*Session)

// WithReducedMotion suppresses the celebration event.
func WithReducedMotion(reduced bool) Option {
	return func(that *Session) {
		that.reducedMotion = reduced
	}
}

// Session is a local game. It is not safe for concurrent use; one device drives it.
type Session struct {
	state         entity.GameState
	starter       entity.Mark
	reducedMotion bool
	listeners     []func(Event)
}

// NewSession starts the first game with X to move.
func NewSession(opts ...Option) *Session {
	session := &Session{
		starter: entity.MarkX,
		state:   tictactoe.Initial(entity.MarkX),
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// Subscribe registers fn for terminal events.
func (that *Session) Subscribe(fn func(Event)) {
	that.listeners = append(that.listeners, fn)
}

// Play places the current mark on cell. Moves on occupied cells or after the game ended are ignored.
func (that *Session) Play(cell int) bool {
	if that.state.Winner.IsTerminal() {
		return false
	}

	next, err := tictactoe.Play(that.state, cell)
	if err != nil {
		return false
	}

	that.state = next

	if next.Winner.IsTerminal() {
		that.finish()
	}

	return true
}

// Undo takes back the last move while the game is still running.
func (that *Session) Undo() bool {
	if that.state.Winner.IsTerminal() {
		return false
	}

	previous, err := tictactoe.Rewind(that.state)
	if err != nil {
		return false
	}

	that.state = previous

	return true
}

// Reset clears the board. The starting mark flips on every reset regardless of who won.
func (that *Session) Reset() {
	that.starter = that.starter.Opposite()
	that.state = tictactoe.Initial(that.starter)
}

func (that *Session) State() Snapshot {
	return Snapshot{
		Board:       that.state.State,
		Turn:        that.state.Turn,
		Outcome:     that.state.Winner,
		WinningLine: slices.Clone(that.state.WinningLine),
		HistoryLen:  len(that.state.History),
		Starter:     that.starter,
	}
}

// Status returns the line announced to players, e.g. "Corgi's turn" or "It's a tie!".
func (that *Session) Status() string {
	if that.state.Winner.IsTerminal() {
		return that.state.Winner.Describe()
	}

	return that.state.Turn.Name() + "'s turn"
}

func (that *Session) finish() {
	outcome := that.state.Winner
	line := that.state.WinningLine

	that.emit(Event{Type: EventGameOver, Outcome: outcome, Line: slices.Clone(line)})

	if outcome.IsDraw() || that.reducedMotion {
		return
	}

	that.emit(Event{Type: EventCelebrate, Outcome: outcome, Line: slices.Clone(line)})
}

func (that *Session) emit(event Event) {
	for _, listener := range that.listeners {
		listener(event)
	}
}
