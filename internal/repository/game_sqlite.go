package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

const selectGame = `SELECT id, room_code, state, history, turn, winner, winning_line, player_x, player_o, version, created_at FROM games`

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteGameRepository expects the games table created by storage.SQLite.Init.
func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) Create(ctx context.Context, game *entity.Game) error {
	game.Version = 1

	row, err := toRow(game)
	if err != nil {
		return err
	}

	query := `INSERT INTO games (id, room_code, state, history, turn, winner, winning_line, player_x, player_o, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (room_code) DO NOTHING`

	result, err := that.conn.ExecContext(ctx, query,
		row.ID, row.RoomCode, row.State, row.History, row.Turn, row.Winner, row.WinningLine,
		row.PlayerX, row.PlayerO, row.Version, row.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	if inserted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrRoomCodeTaken, game.RoomCode)
	}

	return nil
}

func (that *sqliteGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return scanGame(that.conn.QueryRowContext(ctx, selectGame+` WHERE id = ?`, id))
}

func (that *sqliteGame) GetByCode(ctx context.Context, code string) (*entity.Game, error) {
	return scanGame(that.conn.QueryRowContext(ctx, selectGame+` WHERE room_code = ?`, code))
}

func (that *sqliteGame) Join(ctx context.Context, id string, version int64, joinerID string) (*entity.Game, error) {
	query := `UPDATE games SET player_o = ?, version = version + 1 WHERE id = ? AND version = ?`

	return that.update(ctx, id, query, joinerID, id, version)
}

func (that *sqliteGame) ApplyMove(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.writeState(ctx, id, version, state)
}

func (that *sqliteGame) Undo(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	return that.writeState(ctx, id, version, undoState(state))
}

func (that *sqliteGame) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := that.conn.ExecContext(ctx, `DELETE FROM games WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("can't delete expired games: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("can't delete expired games: %w", err)
	}

	return int(deleted), nil
}

func (that *sqliteGame) writeState(ctx context.Context, id string, version int64, state entity.GameState) (*entity.Game, error) {
	columns, err := encodeState(state)
	if err != nil {
		return nil, err
	}

	query := `UPDATE games SET state = ?, history = ?, turn = ?, winner = ?, winning_line = ?, version = version + 1
		WHERE id = ? AND version = ?`

	return that.update(ctx, id, query,
		columns.State, columns.History, columns.Turn, columns.Winner, columns.WinningLine, id, version,
	)
}

// update runs a version-conditioned statement and reads the row back in the same transaction.
func (that *sqliteGame) update(ctx context.Context, id, query string, args ...any) (*entity.Game, error) {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't update game: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("can't update game: %w", err)
	}

	game, err := scanGame(tx.QueryRowContext(ctx, selectGame+` WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	if updated == 0 {
		return nil, apperror.ErrConflict
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("can't commit game update: %w", err)
	}

	return game, nil
}

func scanGame(row *sql.Row) (*entity.Game, error) {
	var (
		record    gameRow
		createdAt int64
	)

	err := row.Scan(
		&record.ID, &record.RoomCode, &record.State, &record.History, &record.Turn, &record.Winner,
		&record.WinningLine, &record.PlayerX, &record.PlayerO, &record.Version, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	record.CreatedAt = time.Unix(0, createdAt)

	return fromRow(&record)
}
