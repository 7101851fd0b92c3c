package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

type postgresGame struct {
	db *gorm.DB
}

// NewPostgresGameRepository stores records through gorm. Call AutoMigrate once before use.
func NewPostgresGameRepository(db *gorm.DB) GameRepository {
	return &postgresGame{
		db: db,
	}
}

// AutoMigrate creates or updates the games table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&gameRow{}); err != nil {
		return fmt.Errorf("failed to migrate games table: %w", err)
	}

	return nil
}

func (that *postgresGame) Create(ctx context.Context, game *entity.Game) error {
	game.Version = 1

	row, err := toRow(game)
	if err != nil {
		return err
	}

	result := that.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "room_code"}}, DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return fmt.Errorf("failed to create game: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrRoomCodeTaken, game.RoomCode)
	}

	return nil
}

func (that *postgresGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return findGame(that.db.WithContext(ctx), "id = ?", id)
}

func (that *postgresGame) GetByCode(ctx context.Context, code string) (*entity.Game, error) {
	return findGame(that.db.WithContext(ctx), "room_code = ?", code)
}

func (that *postgresGame) Join(ctx context.Context, id string, version int64, joinerID string) (*entity.Game, error) {
	return that.update(ctx, id, version, map[string]any{
		"player_o": joinerID,
	})
}

func (that *postgresGame) ApplyMove(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.writeState(ctx, id, version, state)
}

func (that *postgresGame) Undo(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.writeState(ctx, id, version, undoState(state))
}

func (that *postgresGame) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result := that.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&gameRow{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired games: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}

func (that *postgresGame) writeState(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	columns, err := encodeState(state)
	if err != nil {
		return nil, err
	}

	return that.update(ctx, id, version, map[string]any{
		"state":        columns.State,
		"history":      columns.History,
		"turn":         columns.Turn,
		"winner":       columns.Winner,
		"winning_line": columns.WinningLine,
	})
}

func (that *postgresGame) update(ctx context.Context, id string, version int64, values map[string]any) (*entity.Game, error) {
	var updated *entity.Game

	values["version"] = gorm.Expr("version + 1")

	err := that.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&gameRow{}).Where("id = ? AND version = ?", id, version).Updates(values)
		if result.Error != nil {
			return fmt.Errorf("failed to update game: %w", result.Error)
		}

		game, err := findGame(tx, "id = ?", id)
		if err != nil {
			return err
		}

		if result.RowsAffected == 0 {
			return apperror.ErrConflict
		}

		updated = game

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func findGame(db *gorm.DB, query string, args ...any) (*entity.Game, error) {
	var row gameRow

	err := db.Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return fromRow(&row)
}
