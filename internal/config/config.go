package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage   Storage   `yaml:"storage"`
	Redis     Redis     `yaml:"redis"`
	SQLite    SQLite    `yaml:"sqlite"`
	Postgres  Postgres  `yaml:"postgres"`
	CORS      CORS      `yaml:"cors"`
	Retention Retention `yaml:"retention"`
	Protocol  Protocol  `yaml:"protocol"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"capycorgi.db"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type Retention struct {
	RoomTTL       time.Duration `yaml:"room-ttl" env:"RETENTION_ROOM_TTL" env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"RETENTION_SWEEP_INTERVAL" env-default:"10m"`
}

type Protocol struct {
	MaxWriteAttempts int `yaml:"max-write-attempts" env:"PROTOCOL_MAX_WRITE_ATTEMPTS" env-default:"5"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage.Driver {
	case DriverMemory, DriverRedis, DriverSQLite:
	case DriverPostgres:
		if that.Postgres.DSN == "" {
			return errors.New("postgres storage needs postgres.dsn")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}

	if that.Retention.RoomTTL <= 0 || that.Retention.SweepInterval <= 0 {
		return errors.New("retention durations must be positive")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
