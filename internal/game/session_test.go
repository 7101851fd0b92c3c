package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

func playAll(t *testing.T, session *Session, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.True(t, session.Play(cell), "move on cell %d", cell)
	}
}

func record(session *Session) *[]Event {
	events := &[]Event{}
	session.Subscribe(func(event Event) {
		*events = append(*events, event)
	})

	return events
}

func TestNewSession(t *testing.T) {
	// When: a session starts
	session := NewSession()

	// Then: the board is empty and the Capybara moves first
	expected := Snapshot{
		Board:      entity.Board{},
		Turn:       entity.MarkX,
		Outcome:    entity.OutcomeNone,
		HistoryLen: 1,
		Starter:    entity.MarkX,
	}

	assert.Equal(t, expected, session.State())
	assert.Equal(t, "Capybara's turn", session.Status())
}

func TestSession_Play(t *testing.T) {
	t.Run("Move switches turn and grows history", func(t *testing.T) {
		// Given: a new session
		session := NewSession()

		// When: X plays the centre
		moved := session.Play(4)

		// Then: the mark is placed and the Corgi is up
		require.True(t, moved)
		state := session.State()
		assert.Equal(t, entity.MarkX, state.Board[4])
		assert.Equal(t, entity.MarkO, state.Turn)
		assert.Equal(t, 2, state.HistoryLen)
		assert.Equal(t, "Corgi's turn", session.Status())
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		// Given: X has played the centre
		session := NewSession()
		playAll(t, session, 4)
		before := session.State()

		// When: O clicks the same cell
		moved := session.Play(4)

		// Then: nothing changes
		assert.False(t, moved)
		assert.Equal(t, before, session.State())
	})

	t.Run("Out of range cell is ignored", func(t *testing.T) {
		session := NewSession()

		assert.False(t, session.Play(9))
		assert.False(t, session.Play(-1))
		assert.Equal(t, 1, session.State().HistoryLen)
	})

	t.Run("Win emits game over and celebration once", func(t *testing.T) {
		// Given: a session with a subscriber
		session := NewSession()
		events := record(session)

		// When: X completes the top row
		playAll(t, session, 0, 4, 1, 3, 2)

		// Then: the game is over and both events fired
		state := session.State()
		assert.Equal(t, entity.OutcomeX, state.Outcome)
		assert.Equal(t, []int{0, 1, 2}, state.WinningLine)
		assert.Equal(t, "Capybara wins!", session.Status())

		expected := []Event{
			{Type: EventGameOver, Outcome: entity.OutcomeX, Line: []int{0, 1, 2}},
			{Type: EventCelebrate, Outcome: entity.OutcomeX, Line: []int{0, 1, 2}},
		}
		assert.Equal(t, expected, *events)

		// And: further clicks are ignored and emit nothing
		assert.False(t, session.Play(8))
		assert.Len(t, *events, 2)
	})

	t.Run("Reduced motion skips the celebration", func(t *testing.T) {
		session := NewSession(WithReducedMotion(true))
		events := record(session)

		playAll(t, session, 0, 4, 1, 3, 2)

		require.Len(t, *events, 1)
		assert.Equal(t, EventGameOver, (*events)[0].Type)
	})

	t.Run("Draw is not celebrated", func(t *testing.T) {
		// Given: a session with a subscriber
		session := NewSession()
		events := record(session)

		// When: the board fills without a line
		playAll(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: only the game over event fires
		assert.Equal(t, entity.OutcomeDraw, session.State().Outcome)
		assert.Nil(t, session.State().WinningLine)
		assert.Equal(t, []Event{{Type: EventGameOver, Outcome: entity.OutcomeDraw}}, *events)
		assert.Equal(t, "It's a tie!", session.Status())
	})
}

func TestSession_Undo(t *testing.T) {
	t.Run("Undo restores board and turn", func(t *testing.T) {
		// Given: two moves have been played
		session := NewSession()
		playAll(t, session, 0)
		afterFirst := session.State()
		playAll(t, session, 4)

		// When: the last move is undone
		undone := session.Undo()

		// Then: the board is back to the first move with the Corgi to play
		require.True(t, undone)
		assert.Equal(t, afterFirst, session.State())
	})

	t.Run("Undo at the floor is a no-op", func(t *testing.T) {
		session := NewSession()

		assert.False(t, session.Undo())
		assert.Equal(t, 1, session.State().HistoryLen)
	})

	t.Run("Undo after game over is ignored", func(t *testing.T) {
		session := NewSession()
		playAll(t, session, 0, 4, 1, 3, 2)

		assert.False(t, session.Undo())
		assert.Equal(t, entity.OutcomeX, session.State().Outcome)
	})

	t.Run("History never drops below one entry", func(t *testing.T) {
		session := NewSession()
		playAll(t, session, 0, 1, 2)

		for range 5 {
			session.Undo()
		}

		assert.Equal(t, 1, session.State().HistoryLen)
		assert.Equal(t, entity.MarkX, session.State().Turn)
	})
}

func TestSession_Reset(t *testing.T) {
	// Given: a finished game
	session := NewSession()
	playAll(t, session, 0, 4, 1, 3, 2)

	// When: the board is reset twice
	session.Reset()
	first := session.State()
	session.Reset()
	second := session.State()

	// Then: the starter alternates and the board is empty each time
	assert.Equal(t, entity.MarkO, first.Turn)
	assert.Equal(t, entity.MarkO, first.Starter)
	assert.Equal(t, entity.Board{}, first.Board)
	assert.Equal(t, 1, first.HistoryLen)
	assert.Equal(t, entity.OutcomeNone, first.Outcome)

	assert.Equal(t, entity.MarkX, second.Turn)
	assert.True(t, session.Play(0))
}
