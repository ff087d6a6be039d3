package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

type State string

const (
	StateIdle       State = "idle"
	StateFetching   State = "fetching"
	StateRendered   State = "rendered"
	StateErrorShown State = "error-shown"
)

const (
	DefaultInterval time.Duration = 10 * time.Second
	DefaultLimit    int           = 6
)

// Snapshot is what a consumer of the feed displays. Readings always hold the
// result of the last successful fetch. State is idle until the first fetch
// and again after the feed is cancelled; between ticks it stays rendered or
// error-shown.
type Snapshot struct {
	BoxID       string
	State       State
	Readings    []types.Reading
	Error       string
	LastSuccess time.Time
	LastAttempt time.Time
}

// Stale reports whether the last successful fetch is older than maxAge.
func (s Snapshot) Stale(now time.Time, maxAge time.Duration) bool {
	return s.LastSuccess.IsZero() || now.Sub(s.LastSuccess) > maxAge
}

// Feed polls the readings of one box on a fixed interval. At most one fetch is
// in flight at any time; a tick that fires while a fetch is outstanding is
// skipped.
type Feed struct {
	client   SmartBoxClient
	boxID    string
	limit    int
	interval time.Duration
	onUpdate func(Snapshot)
	now      func() time.Time

	inFlight atomic.Bool
	fetches  sync.WaitGroup

	mu       sync.RWMutex
	snapshot Snapshot
}

type FeedOption func(*Feed)

func WithLimit(limit int) FeedOption {
	return func(f *Feed) {
		if limit > 0 {
			f.limit = limit
		}
	}
}

func WithInterval(interval time.Duration) FeedOption {
	return func(f *Feed) {
		if interval > 0 {
			f.interval = interval
		}
	}
}

// OnUpdate registers a function that is called after every completed fetch.
func OnUpdate(fn func(Snapshot)) FeedOption {
	return func(f *Feed) {
		f.onUpdate = fn
	}
}

func NewFeed(c SmartBoxClient, boxID string, opts ...FeedOption) *Feed {
	f := &Feed{
		client:   c,
		boxID:    boxID,
		limit:    DefaultLimit,
		interval: DefaultInterval,
		onUpdate: func(Snapshot) {},
		now:      time.Now,
		snapshot: Snapshot{BoxID: boxID, State: StateIdle, Readings: []types.Reading{}},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	s := f.snapshot
	s.Readings = append([]types.Reading{}, f.snapshot.Readings...)
	return s
}

// Run fetches immediately and then once per interval until ctx is cancelled.
// It returns when the outstanding fetch, if any, has finished.
func (f *Feed) Run(ctx context.Context) error {
	log := logging.GetFromContext(ctx).With().Str("box_id", f.boxID).Logger()
	log.Info().Dur("interval", f.interval).Int("limit", f.limit).Msg("starting live feed")

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			f.fetches.Wait()
			log.Info().Msg("live feed stopped")
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			if !f.Tick(ctx) {
				log.Debug().Msg("previous fetch still in flight, skipping tick")
			}
		}
	}
}

// Tick starts a fetch in the background and reports whether it did. No fetch
// is started while another one is in flight or after ctx is done.
func (f *Feed) Tick(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	if !f.inFlight.CompareAndSwap(false, true) {
		return false
	}

	f.fetches.Add(1)
	f.setState(StateFetching)

	go func() {
		defer f.fetches.Done()
		defer f.inFlight.Store(false)
		f.fetch(ctx)
	}()

	return true
}

// Wait blocks until the outstanding fetch, if any, has completed.
func (f *Feed) Wait() {
	f.fetches.Wait()
}

func (f *Feed) fetch(ctx context.Context) {
	readings, err := f.client.GetRecent(ctx, f.boxID, f.limit)

	if ctx.Err() != nil {
		f.setState(StateIdle)
		return
	}

	f.mu.Lock()
	f.snapshot.LastAttempt = f.now()
	if err != nil {
		f.snapshot.State = StateErrorShown
		f.snapshot.Error = err.Error()
	} else {
		f.snapshot.State = StateRendered
		f.snapshot.Error = ""
		f.snapshot.Readings = readings
		f.snapshot.LastSuccess = f.snapshot.LastAttempt
	}
	f.mu.Unlock()

	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Debug().Err(err).Str("box_id", f.boxID).Msg("fetch failed, keeping last readings")
	}

	f.onUpdate(f.Snapshot())
}

func (f *Feed) setState(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot.State = s
}
