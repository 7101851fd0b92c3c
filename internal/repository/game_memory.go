package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

type memoryGame struct {
	mu     sync.RWMutex
	games  map[string]*entity.Game
	byCode map[string]string
}

// NewMemoryGameRepository keeps records in process memory. Records are copied on the way in and out.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games:  make(map[string]*entity.Game),
		byCode: make(map[string]string),
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.byCode[game.RoomCode]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrRoomCodeTaken, game.RoomCode)
	}

	game.Version = 1

	that.games[game.ID] = game.Clone()
	that.byCode[game.RoomCode] = game.ID

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	return game.Clone(), nil
}

func (that *memoryGame) GetByCode(ctx context.Context, code string) (*entity.Game, error) {
	that.mu.RLock()
	id, ok := that.byCode[code]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrNotFound
	}

	return that.GetByID(ctx, id)
}

func (that *memoryGame) Join(_ context.Context, id string, version int64, joinerID string) (*entity.Game, error) {
	return that.update(id, version, func(game *entity.Game) {
		game.PlayerO = entity.PlayerID(joinerID)
	})
}

func (that *memoryGame) ApplyMove(_ context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.update(id, version, func(game *entity.Game) {
		game.Apply(state)
	})
}

func (that *memoryGame) Undo(_ context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.update(id, version, func(game *entity.Game) {
		game.Apply(undoState(state))
	})
}

func (that *memoryGame) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	deleted := 0
	for id, game := range that.games {
		if !game.CreatedAt.Before(cutoff) {
			continue
		}

		delete(that.games, id)
		delete(that.byCode, game.RoomCode)
		deleted++
	}

	return deleted, nil
}

func (that *memoryGame) update(id string, version int64, mutate func(game *entity.Game)) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	if game.Version != version {
		return nil, apperror.ErrConflict
	}

	updated := game.Clone()
	mutate(updated)
	updated.Version++

	that.games[id] = updated

	return updated.Clone(), nil
}
