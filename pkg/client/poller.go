package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

const (
	DefaultPollInterval = 2 * time.Second

	maxRetryElapsed = 1500 * time.Millisecond
)

type fetcher interface {
	Fetch(ctx context.Context, roomCode string) (*entity.Game, bool, error)
}

// Observer receives the outcome of every poll.
type Observer interface {
	OnUpdate(game *entity.Game)
	OnNotFound()
	OnError(err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Update   func(game *entity.Game)
	NotFound func()
	Error    func(err error)
}

func (that ObserverFuncs) OnUpdate(game *entity.Game) {
	if that.Update != nil {
		that.Update(game)
	}
}

func (that ObserverFuncs) OnNotFound() {
	if that.NotFound != nil {
		that.NotFound()
	}
}

func (that ObserverFuncs) OnError(err error) {
	if that.Error != nil {
		that.Error(err)
	}
}

// Poller keeps a client's copy of a room in step with the server.
type Poller struct {
	logger   *slog.Logger
	client   fetcher
	roomCode string
	observer Observer

	interval   time.Duration
	clock      clockwork.Clock
	newBackOff func() backoff.BackOff
}

type PollerOption func(*Poller)

func WithInterval(interval time.Duration) PollerOption {
	return func(that *Poller) {
		that.interval = interval
	}
}

func WithClock(clock clockwork.Clock) PollerOption {
	return func(that *Poller) {
		that.clock = clock
	}
}

func WithLogger(logger *slog.Logger) PollerOption {
	return func(that *Poller) {
		that.logger = logger
	}
}

// WithBackOff sets the retry policy used for transient failures within one poll.
func WithBackOff(newBackOff func() backoff.BackOff) PollerOption {
	return func(that *Poller) {
		that.newBackOff = newBackOff
	}
}

func NewPoller(client fetcher, roomCode string, observer Observer, opts ...PollerOption) *Poller {
	poller := &Poller{
		logger:   slog.Default(),
		client:   client,
		roomCode: roomCode,
		observer: observer,

		interval: DefaultPollInterval,
		clock:    clockwork.NewRealClock(),
		newBackOff: func() backoff.BackOff {
			policy := backoff.NewExponentialBackOff()
			policy.InitialInterval = 100 * time.Millisecond
			policy.MaxElapsedTime = maxRetryElapsed

			return policy
		},
	}

	for _, opt := range opts {
		opt(poller)
	}

	poller.logger = poller.logger.With("component", "poller", "room_code", roomCode)

	return poller
}

// Run fetches right away and then on every interval. It returns nil once a fetched record
// carries a final outcome, or the context error when ctx is cancelled.
func (that *Poller) Run(ctx context.Context) error {
	ticker := that.clock.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		if that.poll(ctx) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}

// poll runs one fetch and reports whether polling is over.
func (that *Poller) poll(ctx context.Context) bool {
	log := that.logger.With("method", "poll")

	var (
		game  *entity.Game
		found bool
	)

	operation := func() error {
		var err error

		game, found, err = that.client.Fetch(ctx, that.roomCode)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Debug("fetch failed, retrying", "error", err, "wait", wait)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(that.newBackOff(), ctx), notify)

	switch {
	case ctx.Err() != nil:
		return false
	case err != nil:
		log.Warn("fetch failed", "error", err)
		that.observer.OnError(err)
		return false
	case !found:
		that.observer.OnNotFound()
		return false
	}

	that.observer.OnUpdate(game)

	return game.IsFinished()
}
