package repository

import (
	"context"
	"time"

	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

// GameRepository persists game records. Every write is conditioned on the version the caller read;
// a stale version fails with apperror.ErrConflict and nothing is written.
// Missing records fail with apperror.ErrNotFound. Business rules are validated by the caller.
type GameRepository interface {
	// Create stores a new record and sets its version. A duplicate room code fails with apperror.ErrRoomCodeTaken.
	Create(ctx context.Context, game *entity.Game) error

	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetByCode(ctx context.Context, code string) (*entity.Game, error)

	// Join sets the joiner identifier.
	Join(ctx context.Context, id string, version int64, joinerID string) (*entity.Game, error)
	// ApplyMove overwrites board, history, turn, outcome and winning line.
	ApplyMove(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error)
	// Undo is ApplyMove that always clears the outcome.
	Undo(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error)

	// DeleteCreatedBefore removes records created before cutoff and frees their room codes.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

func undoState(state entity.GameState) entity.GameState {
	state.Winner = entity.OutcomeNone
	state.WinningLine = nil

	return state
}
