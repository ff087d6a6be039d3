// Package watchdog reports active boxes that have stopped sending readings.
package watchdog

import (
	"context"
	"sync"
	"time"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	telemetryRepo "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
)

type Config struct {
	Interval         time.Duration `yaml:"interval"`
	NotObservedAfter time.Duration `yaml:"notObservedAfter"`
}

type Watchdog interface {
	Start(ctx context.Context)
	Stop()
}

type watchdog struct {
	store     telemetryRepo.Store
	publisher messaging.Publisher
	interval  time.Duration
	maxSilent time.Duration
	now       func() time.Time

	// reported holds the last reading time a box was reported for, so that a
	// silent box is only reported once until it sends a new reading.
	reported map[string]time.Time

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func New(store telemetryRepo.Store, publisher messaging.Publisher, cfg Config) Watchdog {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.NotObservedAfter <= 0 {
		cfg.NotObservedAfter = 10 * time.Minute
	}

	return &watchdog{
		store:     store,
		publisher: publisher,
		interval:  cfg.Interval,
		maxSilent: cfg.NotObservedAfter,
		now:       func() time.Time { return time.Now().UTC() },
		reported:  map[string]time.Time{},
	}
}

func (w *watchdog) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.done.Add(1)
	go func() {
		defer w.done.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.check(ctx)
			}
		}
	}()
}

func (w *watchdog) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.done.Wait()
}

func (w *watchdog) check(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	boxes, err := w.store.ListBoxes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list boxes")
		return
	}

	now := w.now()

	for _, b := range boxes {
		if b.Status != telemetryRepo.StatusActive || b.Last == nil {
			continue
		}

		lastSeen := b.Last.ReceivedAt
		if now.Sub(lastSeen) <= w.maxSilent {
			continue
		}
		if reported, ok := w.reported[b.ID]; ok && reported.Equal(lastSeen) {
			continue
		}

		err := w.publisher.PublishOnTopic(ctx, &BoxNotObserved{
			BoxID:      b.ID,
			LastSeen:   lastSeen,
			ObservedAt: now,
		})
		if err != nil {
			log.Error().Err(err).Str("box_id", b.ID).Msg("failed to publish box not observed")
			continue
		}

		log.Info().Str("box_id", b.ID).Time("last_seen", lastSeen).Msg("box has not been observed")
		w.reported[b.ID] = lastSeen
	}
}
