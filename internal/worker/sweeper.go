package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

type expiredGames interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Sweeper deletes rooms older than a time to live so their codes can be reused.
type Sweeper struct {
	logger *slog.Logger
	games  expiredGames

	ttl      time.Duration
	interval time.Duration
	clock    clockwork.Clock

	scheduler gocron.Scheduler
}

type Option func(*Sweeper)

// WithClock sets the clock used to compute the cutoff.
func WithClock(clock clockwork.Clock) Option {
	return func(that *Sweeper) {
		that.clock = clock
	}
}

func NewSweeper(logger *slog.Logger, games expiredGames, ttl, interval time.Duration, opts ...Option) (*Sweeper, error) {
	sweeper := &Sweeper{
		logger:   logger.With("component", "sweeper"),
		games:    games,
		ttl:      ttl,
		interval: interval,
		clock:    clockwork.NewRealClock(),
	}

	for _, opt := range opts {
		opt(sweeper)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLogger(sweeper.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	sweeper.scheduler = scheduler

	return sweeper, nil
}

// Sweep deletes every room created more than ttl ago.
func (that *Sweeper) Sweep(ctx context.Context) (int, error) {
	log := that.logger.With("method", "Sweep")

	cutoff := that.clock.Now().Add(-that.ttl)

	deleted, err := that.games.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return deleted, fmt.Errorf("failed to delete expired games: %w", err)
	}

	if deleted > 0 {
		log.Info("expired games deleted", "count", deleted, "cutoff", cutoff)
	}

	return deleted, nil
}

// Start runs a sweep now and then every interval until Stop.
func (that *Sweeper) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	_, err := that.scheduler.NewJob(
		gocron.DurationJob(that.interval),
		gocron.NewTask(func() {
			if _, err := that.Sweep(ctx); err != nil {
				log.Error("sweep failed", "error", err)
			}
		}),
		gocron.WithName("sweep-expired-games"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	that.scheduler.Start()

	log.Info("sweeper started", "ttl", that.ttl, "interval", that.interval)

	return nil
}

func (that *Sweeper) Stop() error {
	if err := that.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop sweeper: %w", err)
	}

	return nil
}
