package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Postgres struct {
	Connection *gorm.DB
}

func NewPostgresStorage(dsn string) (*Postgres, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Postgres{Connection: conn}, nil
}

func (that *Postgres) Close() error {
	sqlDB, err := that.Connection.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	return sqlDB.Close()
}
