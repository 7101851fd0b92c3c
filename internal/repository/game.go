package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

const createdIndexKey = "games:created"

type dbGame struct {
	client *redis.Client
}

// storedGame keeps the version next to the public fields.
type storedGame struct {
	*entity.Game
	Version int64 `json:"version"`
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// NewGameRepository returns the redis backed store. Records live under game:<id>,
// room:<code> points to the id and games:created orders ids by creation time.
func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func roomKey(code string) string {
	return "room:" + code
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	claimed, err := that.client.SetNX(ctx, roomKey(game.RoomCode), game.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim room code: %w", err)
	}

	if !claimed {
		return fmt.Errorf("%w: %s", apperror.ErrRoomCodeTaken, game.RoomCode)
	}

	game.Version = 1

	gameJSON, err := encodeGame(game)
	if err != nil {
		return err
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(game.ID), gameJSON, 0)
		pipe.ZAdd(ctx, createdIndexKey, redis.Z{Score: float64(game.CreatedAt.UnixMilli()), Member: game.ID})
		return nil
	})
	if err != nil {
		// release the code so a retry can claim it again
		that.client.Del(ctx, roomKey(game.RoomCode))

		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return loadGame(ctx, that.client, id)
}

func (that *dbGame) GetByCode(ctx context.Context, code string) (*entity.Game, error) {
	id, err := that.client.Get(ctx, roomKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return loadGame(ctx, that.client, id)
}

func (that *dbGame) Join(ctx context.Context, id string, version int64, joinerID string) (*entity.Game, error) {
	return that.update(ctx, id, version, func(game *entity.Game) {
		game.PlayerO = entity.PlayerID(joinerID)
	})
}

func (that *dbGame) ApplyMove(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.update(ctx, id, version, func(game *entity.Game) {
		game.Apply(state)
	})
}

func (that *dbGame) Undo(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.update(ctx, id, version, func(game *entity.Game) {
		game.Apply(undoState(state))
	})
}

func (that *dbGame) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	ids, err := that.client.ZRangeByScore(ctx, createdIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list expired games: %w", err)
	}

	deleted := 0
	for _, id := range ids {
		game, err := loadGame(ctx, that.client, id)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return deleted, err
		}

		_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if game != nil {
				pipe.Del(ctx, gameKey(id), roomKey(game.RoomCode))
			}
			pipe.ZRem(ctx, createdIndexKey, id)
			return nil
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to delete game %s: %w", id, err)
		}

		if game != nil {
			deleted++
		}
	}

	return deleted, nil
}

// update runs a WATCH/MULTI cycle so a concurrent writer makes this one fail instead of being overwritten.
func (that *dbGame) update(ctx context.Context, id string, version int64, mutate func(game *entity.Game)) (*entity.Game, error) {
	key := gameKey(id)

	var updated *entity.Game

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		game, err := loadGame(ctx, tx, id)
		if err != nil {
			return err
		}

		if game.Version != version {
			return apperror.ErrConflict
		}

		mutate(game)
		game.Version++

		gameJSON, err := encodeGame(game)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = game

		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, apperror.ErrConflict
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return updated, nil
}

func loadGame(ctx context.Context, client stringGetter, id string) (*entity.Game, error) {
	response, err := client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	existingGame := storedGame{Game: &entity.Game{}}
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	existingGame.Game.Version = existingGame.Version

	return existingGame.Game, nil
}

func encodeGame(game *entity.Game) ([]byte, error) {
	gameJSON, err := json.Marshal(storedGame{Game: game, Version: game.Version})
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return gameJSON, nil
}
