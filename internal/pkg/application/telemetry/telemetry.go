// Package telemetry ingests box readings and answers the live feed, box and
// dashboard queries.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"

	"github.com/diwise/smartbox-telemetry/internal/pkg/application/alerts"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/classifier"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/ledger"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/metrics"
	telemetryRepo "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/tracing"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

var tracer = otel.Tracer("smartbox-telemetry/telemetry")

const DefaultLimit int = 6

var (
	ErrValidation       = telemetryRepo.ErrValidation
	ErrBoxNotFound      = telemetryRepo.ErrBoxNotFound
	ErrBoxAlreadyExists = telemetryRepo.ErrBoxAlreadyExists
)

//go:generate moq -rm -out telemetry_mock.go . TelemetryService
type TelemetryService interface {
	Ingest(ctx context.Context, boxID string, payload types.ReadingPayload) (types.IngestResult, error)
	GetRecent(ctx context.Context, boxID string, limit int) ([]types.Reading, error)
	GetDashboard(ctx context.Context) (types.Dashboard, error)

	ListBoxes(ctx context.Context) ([]types.BoxSummary, error)
	GetBox(ctx context.Context, boxID string) (types.BoxSummary, error)
	RegisterBox(ctx context.Context, box types.BoxRegistration) (types.BoxSummary, error)
	UpdateBox(ctx context.Context, boxID string, update types.BoxUpdate) (types.BoxSummary, error)
}

type service struct {
	store      telemetryRepo.Store
	alerts     alerts.AlertService
	ledger     ledger.Ledger
	publisher  messaging.Publisher
	thresholds classifier.Thresholds
	metrics    *metrics.Metrics

	locks sync.Map
}

type Option func(*service)

func WithThresholds(t classifier.Thresholds) Option {
	return func(s *service) {
		if !t.IsZero() {
			s.thresholds = t
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) {
		s.metrics = m
	}
}

func WithPublisher(p messaging.Publisher) Option {
	return func(s *service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func New(store telemetryRepo.Store, alertSvc alerts.AlertService, l ledger.Ledger, opts ...Option) TelemetryService {
	svc := &service{
		store:      store,
		alerts:     alertSvc,
		ledger:     l,
		publisher:  messaging.Multi(),
		thresholds: classifier.DefaultThresholds,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Ingest stores a reading and evaluates it for alerts. A failure to record an
// alert does not undo the stored reading; it is reported in the result.
func (svc *service) Ingest(ctx context.Context, boxID string, payload types.ReadingPayload) (types.IngestResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "ingest-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	started := time.Now()
	boxID = strings.TrimSpace(boxID)

	if payload.BoxID != "" && payload.BoxID != boxID {
		svc.metrics.ReadingRejected()
		err = fmt.Errorf("%w: box id in body (%s) does not match path (%s)", ErrValidation, payload.BoxID, boxID)
		return types.IngestResult{}, err
	}

	log := logging.GetFromContext(ctx).With().Str("box_id", boxID).Logger()
	ctx = logging.NewContextWithLogger(ctx, log)

	unlock := svc.lock(boxID)

	stored, err := svc.store.AppendReading(ctx, boxID, toSensorLog(payload))
	if err != nil {
		unlock()
		svc.metrics.ReadingRejected()
		return types.IngestResult{}, err
	}

	evaluation, alertErr := svc.alerts.Evaluate(ctx, boxID, stored)
	unlock()

	result := types.IngestResult{
		Reading: toReading(stored, evaluation.Result),
		Alert:   evaluation.Opened,
	}

	if alertErr != nil {
		log.Error().Err(alertErr).Uint64("reading_id", stored.ID).Msg("reading stored but alert evaluation failed")
		result.AlertError = alertErr.Error()
	}

	if stored.OutOfOrder {
		log.Info().Uint64("reading_id", stored.ID).Time("timestamp", stored.Timestamp).Msg("reading is out of order")
	}

	svc.metrics.ReadingIngested(result.Verdict, stored.OutOfOrder, started)

	if pubErr := svc.publisher.PublishOnTopic(ctx, &ReadingStored{Reading: result.Reading}); pubErr != nil {
		log.Error().Err(pubErr).Msg("failed to publish stored reading")
	}

	return result, nil
}

// GetRecent returns up to limit readings, newest first. An unknown box has no
// readings yet and yields an empty result.
func (svc *service) GetRecent(ctx context.Context, boxID string, limit int) ([]types.Reading, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > svc.store.Capacity() {
		limit = svc.store.Capacity()
	}

	logs, err := svc.store.RecentReadings(ctx, boxID, limit)
	if err != nil {
		if errors.Is(err, ErrBoxNotFound) {
			return []types.Reading{}, nil
		}
		return nil, err
	}

	return lo.Map(logs, func(l telemetryRepo.SensorLog, _ int) types.Reading {
		return toReading(l, svc.thresholds.Classify(l.Temperature, l.Humidity))
	}), nil
}

func (svc *service) GetDashboard(ctx context.Context) (types.Dashboard, error) {
	stats, err := svc.ledger.Stats(ctx)
	if err != nil {
		return types.Dashboard{}, fmt.Errorf("failed to read ledger: %w", err)
	}

	boxes, err := svc.store.ListBoxes(ctx)
	if err != nil {
		return types.Dashboard{}, err
	}

	open, err := svc.alerts.CountOpen(ctx)
	if err != nil {
		return types.Dashboard{}, err
	}

	return types.Dashboard{
		DashboardStats: stats,
		Boxes:          len(boxes),
		OpenAlerts:     open,
	}, nil
}

func (svc *service) ListBoxes(ctx context.Context) ([]types.BoxSummary, error) {
	boxes, err := svc.store.ListBoxes(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(boxes, func(b telemetryRepo.Box, _ int) types.BoxSummary {
		return toBoxSummary(b, svc.thresholds)
	}), nil
}

func (svc *service) GetBox(ctx context.Context, boxID string) (types.BoxSummary, error) {
	b, err := svc.store.GetBox(ctx, boxID)
	if err != nil {
		return types.BoxSummary{}, err
	}
	return toBoxSummary(b, svc.thresholds), nil
}

func (svc *service) RegisterBox(ctx context.Context, box types.BoxRegistration) (types.BoxSummary, error) {
	b, err := svc.store.RegisterBox(ctx, box.ID, box.Location)
	if err != nil {
		return types.BoxSummary{}, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("box_id", b.ID).Msg("box registered")

	return toBoxSummary(b, svc.thresholds), nil
}

func (svc *service) UpdateBox(ctx context.Context, boxID string, update types.BoxUpdate) (types.BoxSummary, error) {
	unlock := svc.lock(boxID)
	defer unlock()

	b, err := svc.store.UpdateBox(ctx, boxID, update.Location, update.Status)
	if err != nil {
		return types.BoxSummary{}, err
	}
	return toBoxSummary(b, svc.thresholds), nil
}

// lock serialises writes for one box without blocking writes to other boxes.
func (svc *service) lock(boxID string) func() {
	v, _ := svc.locks.LoadOrStore(boxID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
