package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// testGameRepositoryContract runs the behaviour every backend must share.
func testGameRepositoryContract(t *testing.T, ctx context.Context, newRepo func(t *testing.T) GameRepository) {
	t.Helper()

	t.Run("Create and fetch by id and code", func(t *testing.T) {
		repo := newRepo(t)

		// Given: a new record
		game := entity.NewGame("g1", "AB12", "host", createdAt)

		// When: it is created
		err := repo.Create(ctx, game)
		require.NoError(t, err)

		// Then: it can be read back both ways with version 1
		assert.Equal(t, int64(1), game.Version)

		byID, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assertSameGame(t, game, byID)

		byCode, err := repo.GetByCode(ctx, "AB12")
		require.NoError(t, err)
		assertSameGame(t, game, byCode)
	})

	t.Run("Missing records are not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, "9999999")
		require.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.GetByCode(ctx, "ZZZZ")
		require.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.Join(ctx, "9999999", 1, "guest")
		require.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.ApplyMove(ctx, "9999999", 1, entity.GameState{})
		require.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.Undo(ctx, "9999999", 1, entity.GameState{})
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Duplicate room code is rejected", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Create(ctx, entity.NewGame("g1", "AB12", "host", createdAt)))

		err := repo.Create(ctx, entity.NewGame("g2", "AB12", "other", createdAt))

		require.ErrorIs(t, err, apperror.ErrRoomCodeTaken)

		_, err = repo.GetByID(ctx, "g2")
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Join sets the joiner and bumps the version", func(t *testing.T) {
		repo := newRepo(t)
		game := entity.NewGame("g1", "AB12", "host", createdAt)
		require.NoError(t, repo.Create(ctx, game))

		joined, err := repo.Join(ctx, "g1", game.Version, "guest")

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerID("guest"), joined.PlayerO)
		assert.Equal(t, int64(2), joined.Version)

		stored, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assertSameGame(t, joined, stored)
	})

	t.Run("ApplyMove overwrites the state", func(t *testing.T) {
		repo := newRepo(t)
		game := entity.NewGame("g1", "AB12", "host", createdAt)
		require.NoError(t, repo.Create(ctx, game))

		// Given: a finished state
		board := entity.Board{entity.MarkX, entity.MarkX, entity.MarkX, entity.MarkO, entity.MarkO}
		state := entity.GameState{
			State:       board,
			History:     []entity.Board{{}, board},
			Turn:        entity.MarkO,
			Winner:      entity.OutcomeX,
			WinningLine: []int{0, 1, 2},
		}

		// When: it is applied
		updated, err := repo.ApplyMove(ctx, "g1", 1, state)

		// Then: all state fields are stored
		require.NoError(t, err)
		assert.Equal(t, state, updated.Snapshot())

		stored, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, state, stored.Snapshot())
		assert.Equal(t, int64(2), stored.Version)
	})

	t.Run("Undo always clears the outcome", func(t *testing.T) {
		repo := newRepo(t)
		game := entity.NewGame("g1", "AB12", "host", createdAt)
		require.NoError(t, repo.Create(ctx, game))

		state := entity.GameState{
			State:       entity.Board{},
			History:     []entity.Board{{}},
			Turn:        entity.MarkX,
			Winner:      entity.OutcomeO,
			WinningLine: []int{2, 4, 6},
		}

		updated, err := repo.Undo(ctx, "g1", 1, state)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeNone, updated.Winner)
		assert.Nil(t, updated.WinningLine)
	})

	t.Run("Stale version is a conflict and writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		game := entity.NewGame("g1", "AB12", "host", createdAt)
		require.NoError(t, repo.Create(ctx, game))

		_, err := repo.Join(ctx, "g1", 1, "guest")
		require.NoError(t, err)

		// When: a writer still holding version 1 tries to update
		_, err = repo.ApplyMove(ctx, "g1", 1, entity.GameState{
			State:   entity.Board{entity.MarkX},
			History: []entity.Board{{}, {entity.MarkX}},
			Turn:    entity.MarkO,
		})

		// Then: the write is rejected
		require.ErrorIs(t, err, apperror.ErrConflict)

		stored, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, stored.State)
	})

	t.Run("Concurrent writers on one version: exactly one wins", func(t *testing.T) {
		repo := newRepo(t)
		game := entity.NewGame("g1", "AB12", "host", createdAt)
		require.NoError(t, repo.Create(ctx, game))

		const writers = 8

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)

		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()

				board := entity.Board{}
				board[i] = entity.MarkX

				_, err := repo.ApplyMove(ctx, "g1", 1, entity.GameState{
					State:   board,
					History: []entity.Board{{}, board},
					Turn:    entity.MarkO,
				})
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, succeeded)

		stored, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.State.Count())
	})

	t.Run("DeleteCreatedBefore frees old rooms only", func(t *testing.T) {
		repo := newRepo(t)

		old := entity.NewGame("old", "OLD1", "host", createdAt)
		fresh := entity.NewGame("fresh", "NEW1", "host", createdAt.Add(2*time.Hour))
		require.NoError(t, repo.Create(ctx, old))
		require.NoError(t, repo.Create(ctx, fresh))

		deleted, err := repo.DeleteCreatedBefore(ctx, createdAt.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		_, err = repo.GetByCode(ctx, "OLD1")
		require.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.GetByID(ctx, "fresh")
		require.NoError(t, err)

		// And: the freed code can be used again
		require.NoError(t, repo.Create(ctx, entity.NewGame("again", "OLD1", "host", createdAt.Add(3*time.Hour))))
	})
}

func assertSameGame(t *testing.T, expected, actual *entity.Game) {
	t.Helper()

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.RoomCode, actual.RoomCode)
	assert.Equal(t, expected.Snapshot(), actual.Snapshot())
	assert.Equal(t, expected.PlayerX, actual.PlayerX)
	assert.Equal(t, expected.PlayerO, actual.PlayerO)
	assert.Equal(t, expected.Version, actual.Version)
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt), "created at %s != %s", expected.CreatedAt, actual.CreatedAt)
}
