package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

// gameRow is the relational form of a record. Board, history and winning line are stored as JSON text.
type gameRow struct {
	ID          string    `gorm:"primaryKey"`
	RoomCode    string    `gorm:"uniqueIndex;not null"`
	State       string    `gorm:"type:text;not null"`
	History     string    `gorm:"type:text;not null"`
	Turn        string    `gorm:"not null"`
	Winner      string    `gorm:"not null;default:''"`
	WinningLine string    `gorm:"type:text;not null"`
	PlayerX     string    `gorm:"not null"`
	PlayerO     string    `gorm:"not null;default:''"`
	Version     int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (gameRow) TableName() string {
	return "games"
}

// stateColumns holds the JSON encoded mutable fields.
type stateColumns struct {
	State       string
	History     string
	Turn        string
	Winner      string
	WinningLine string
}

func encodeState(state entity.GameState) (stateColumns, error) {
	board, err := json.Marshal(state.State)
	if err != nil {
		return stateColumns{}, fmt.Errorf("could not marshal board: %w", err)
	}

	history, err := json.Marshal(state.History)
	if err != nil {
		return stateColumns{}, fmt.Errorf("could not marshal history: %w", err)
	}

	line, err := json.Marshal(state.WinningLine)
	if err != nil {
		return stateColumns{}, fmt.Errorf("could not marshal winning line: %w", err)
	}

	return stateColumns{
		State:       string(board),
		History:     string(history),
		Turn:        string(state.Turn),
		Winner:      string(state.Winner),
		WinningLine: string(line),
	}, nil
}

func toRow(game *entity.Game) (*gameRow, error) {
	columns, err := encodeState(game.Snapshot())
	if err != nil {
		return nil, err
	}

	return &gameRow{
		ID:          game.ID,
		RoomCode:    game.RoomCode,
		State:       columns.State,
		History:     columns.History,
		Turn:        columns.Turn,
		Winner:      columns.Winner,
		WinningLine: columns.WinningLine,
		PlayerX:     string(game.PlayerX),
		PlayerO:     string(game.PlayerO),
		Version:     game.Version,
		CreatedAt:   game.CreatedAt,
	}, nil
}

func fromRow(row *gameRow) (*entity.Game, error) {
	game := &entity.Game{
		ID:        row.ID,
		RoomCode:  row.RoomCode,
		Turn:      entity.Mark(row.Turn),
		Winner:    entity.Outcome(row.Winner),
		PlayerX:   entity.PlayerID(row.PlayerX),
		PlayerO:   entity.PlayerID(row.PlayerO),
		Version:   row.Version,
		CreatedAt: row.CreatedAt.UTC(),
	}

	if err := json.Unmarshal([]byte(row.State), &game.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if err := json.Unmarshal([]byte(row.History), &game.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	if err := json.Unmarshal([]byte(row.WinningLine), &game.WinningLine); err != nil {
		return nil, fmt.Errorf("failed to unmarshal winning line: %w", err)
	}

	return game, nil
}
