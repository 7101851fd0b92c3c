package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
	"github.com/rocketscienceinc/capycorgi-backend/internal/pkg"
	"github.com/rocketscienceinc/capycorgi-backend/internal/tictactoe"
)

const (
	DefaultMaxWriteAttempts = 5
	maxRoomCodeAttempts     = 10
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetByCode(ctx context.Context, code string) (*entity.Game, error)
	Join(ctx context.Context, id string, version int64, joinerID string) (*entity.Game, error)
	ApplyMove(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error)
	Undo(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error)
}

// GameManager validates remote game requests and commits them to the store.
// Every mutation reads the record, validates it and writes it back conditioned on the version it read;
// a lost race re-runs the whole cycle.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	clock       clockwork.Clock
	roomCode    func() (string, error)
	maxAttempts int
}

type Option func(*GameManager)

func WithClock(clock clockwork.Clock) Option {
	return func(that *GameManager) {
		that.clock = clock
	}
}

// WithMaxWriteAttempts bounds how often a mutation is retried after losing a concurrent write.
func WithMaxWriteAttempts(attempts int) Option {
	return func(that *GameManager) {
		if attempts > 0 {
			that.maxAttempts = attempts
		}
	}
}

// WithRoomCodeGenerator replaces the random room code source.
func WithRoomCodeGenerator(generate func() (string, error)) Option {
	return func(that *GameManager) {
		that.roomCode = generate
	}
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,

		clock:       clockwork.NewRealClock(),
		roomCode:    pkg.GenerateRoomCode,
		maxAttempts: DefaultMaxWriteAttempts,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// CreateGame opens a new room hosted by playerID.
func (that *GameManager) CreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", apperror.ErrInvalidRequest)
	}

	for range maxRoomCodeAttempts {
		code, err := that.roomCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}

		game := entity.NewGame(pkg.GenerateGameID(), code, playerID, that.now())

		err = that.gameRepo.Create(ctx, game)
		if errors.Is(err, apperror.ErrRoomCodeTaken) {
			log.Debug("room code collision", "code", code)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		log.Info("game created", "game_id", game.ID, "room_code", game.RoomCode)

		return game, nil
	}

	return nil, fmt.Errorf("failed to allocate room code: %w", apperror.ErrRoomCodeTaken)
}

// JoinGame seats playerID as the joiner. Joining again as host or joiner returns the record unchanged.
func (that *GameManager) JoinGame(ctx context.Context, code, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinGame")

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", apperror.ErrInvalidRequest)
	}

	code, ok := pkg.NormalizeRoomCode(code)
	if !ok {
		return nil, apperror.ErrNotFound
	}

	return that.withRetry(ctx, log, func() (*entity.Game, error) {
		game, err := that.gameRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by code: %w", err)
		}

		if game.HasJoiner() {
			if game.IsParticipant(playerID) {
				return game, nil
			}

			log.Info("room is full", "room_code", code)

			return nil, apperror.ErrRoomFull
		}

		joined, err := that.gameRepo.Join(ctx, game.ID, game.Version, playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to join game: %w", err)
		}

		log.Info("player joined", "game_id", joined.ID, "room_code", code)

		return joined, nil
	})
}

// GetGameByCode returns the record behind a room code.
func (that *GameManager) GetGameByCode(ctx context.Context, code string) (*entity.Game, error) {
	code, ok := pkg.NormalizeRoomCode(code)
	if !ok {
		return nil, apperror.ErrNotFound
	}

	game, err := that.gameRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by code: %w", err)
	}

	return game, nil
}

// MakeMove places the caller's mark on cell. Checks run in order: membership, game over, turn, occupancy.
func (that *GameManager) MakeMove(ctx context.Context, gameID, playerID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove")

	if cell < 0 || cell >= entity.BoardSize {
		return nil, apperror.ErrInvalidCell
	}

	return that.withRetry(ctx, log, func() (*entity.Game, error) {
		game, err := that.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}

		if err = validateMove(game, playerID, cell); err != nil {
			log.Info("move rejected", "game_id", gameID, "cell", cell, "reason", err)
			return nil, err
		}

		next, err := tictactoe.Play(game.Snapshot(), cell)
		if err != nil {
			return nil, fmt.Errorf("failed to play move: %w", err)
		}

		updated, err := that.gameRepo.ApplyMove(ctx, game.ID, game.Version, next)
		if err != nil {
			return nil, fmt.Errorf("failed to apply move: %w", err)
		}

		if updated.IsFinished() {
			log.Info("game finished", "game_id", updated.ID, "winner", updated.Winner)
		}

		return updated, nil
	})
}

// Undo takes back the latest move. Either participant may undo at any time.
func (that *GameManager) Undo(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "Undo")

	return that.withRetry(ctx, log, func() (*entity.Game, error) {
		game, err := that.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}

		if !game.IsParticipant(playerID) {
			return nil, apperror.ErrUnauthorized
		}

		previous, err := tictactoe.Rewind(game.Snapshot())
		if err != nil {
			return nil, err
		}

		updated, err := that.gameRepo.Undo(ctx, game.ID, game.Version, previous)
		if err != nil {
			return nil, fmt.Errorf("failed to undo move: %w", err)
		}

		return updated, nil
	})
}

func validateMove(game *entity.Game, playerID string, cell int) error {
	if !game.IsParticipant(playerID) {
		return apperror.ErrUnauthorized
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !game.Controls(playerID, game.Turn) {
		return apperror.ErrNotYourTurn
	}

	if game.State[cell] != entity.MarkNone {
		return apperror.ErrCellOccupied
	}

	return nil
}

// withRetry re-runs fn while it loses optimistic writes, up to maxAttempts times.
func (that *GameManager) withRetry(ctx context.Context, log *slog.Logger, fn func() (*entity.Game, error)) (*entity.Game, error) {
	var err error

	for attempt := 1; attempt <= that.maxAttempts; attempt++ {
		var game *entity.Game

		game, err = fn()
		if !errors.Is(err, apperror.ErrConflict) {
			return game, err
		}

		log.Debug("concurrent update, retrying", "attempt", attempt)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("failed to retry update: %w", ctxErr)
		}
	}

	log.Warn("giving up after concurrent updates", "attempts", that.maxAttempts)

	return nil, err
}

// now is truncated to milliseconds so every store round-trips it exactly.
func (that *GameManager) now() time.Time {
	return that.clock.Now().UTC().Truncate(time.Millisecond)
}
