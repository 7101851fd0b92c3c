package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type SQLite struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// sqlite allows a single writer; one connection also keeps ":memory:" databases shared.
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLite{Connection: conn}, nil
}

// Init creates the games table and its indexes.
func (that *SQLite) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			room_code TEXT NOT NULL UNIQUE,
			state TEXT NOT NULL,
			history TEXT NOT NULL,
			turn TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			winning_line TEXT NOT NULL,
			player_x TEXT NOT NULL,
			player_o TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_created_at ON games (created_at)`,
	}

	for _, query := range queries {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *SQLite) Close() error {
	return that.Connection.Close()
}
