// Package alerts raises alerts for boxes whose readings leave the safe bounds
// and keeps at most one open engine alert per box.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diwise/smartbox-telemetry/internal/pkg/application/classifier"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/metrics"
	db "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database/alerts"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

// AutoAcknowledger is recorded as the acknowledger of alerts that are closed
// because the box returned to safe readings.
const AutoAcknowledger string = "auto"

var ErrAlertNotFound = db.ErrAlertNotFound
var ErrPersistence = db.ErrPersistence
var ErrValidation = errors.New("invalid alert")

//go:generate moq -rm -out alertservice_mock.go . AlertService
type AlertService interface {
	Evaluate(ctx context.Context, boxID string, reading telemetry.SensorLog) (Evaluation, error)
	Raise(ctx context.Context, alert types.OperatorAlert) (types.Alert, error)
	Acknowledge(ctx context.Context, alertID, acknowledgedBy string) (types.Alert, error)
	GetByID(ctx context.Context, alertID string) (types.Alert, error)
	Query(ctx context.Context, boxID, state string) ([]types.Alert, error)
	CountOpen(ctx context.Context) (int64, error)
}

// Evaluation is the outcome of evaluating one reading. Opened is set when a
// new alert was created and Closed when an open alert was auto-acknowledged.
type Evaluation struct {
	Result classifier.Result
	Opened *types.Alert
	Closed *types.Alert
}

type alertSvc struct {
	repo       db.AlertRepository
	boxes      telemetry.Store
	publisher  messaging.Publisher
	thresholds classifier.Thresholds
	metrics    *metrics.Metrics
	now        func() time.Time
}

type Option func(*alertSvc)

func WithThresholds(t classifier.Thresholds) Option {
	return func(s *alertSvc) {
		if !t.IsZero() {
			s.thresholds = t
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *alertSvc) {
		s.metrics = m
	}
}

func New(repo db.AlertRepository, boxes telemetry.Store, publisher messaging.Publisher, opts ...Option) AlertService {
	svc := &alertSvc{
		repo:       repo,
		boxes:      boxes,
		publisher:  publisher,
		thresholds: classifier.DefaultThresholds,
		now:        func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.publisher == nil {
		svc.publisher = messaging.Multi()
	}

	return svc
}

// Evaluate must not be called concurrently for the same box; the caller is
// expected to serialise appends and evaluations per box.
func (svc *alertSvc) Evaluate(ctx context.Context, boxID string, reading telemetry.SensorLog) (Evaluation, error) {
	log := logging.GetFromContext(ctx).With().Str("box_id", boxID).Uint64("reading_id", reading.ID).Logger()

	result := svc.thresholds.Classify(reading.Temperature, reading.Humidity)
	evaluation := Evaluation{Result: result}

	switch result.Verdict {
	case classifier.Unknown:
		log.Info().Msg("inconclusive reading, alert state left unchanged")
		return evaluation, nil

	case classifier.Unsafe:
		_, err := svc.repo.GetOpen(ctx, boxID, db.SourceEngine)
		if err == nil {
			log.Debug().Msg("box already has an open alert")
			return evaluation, nil
		}
		if !errors.Is(err, db.ErrAlertNotFound) {
			svc.metrics.AlertPersistenceFailed()
			return evaluation, err
		}

		a := db.Alert{
			ID:          uuid.NewString(),
			BoxID:       boxID,
			Source:      db.SourceEngine,
			Status:      db.StatusOpen,
			Severity:    severityOf(result),
			Description: "reading outside safe bounds: " + strings.Join(result.Strings(), ", "),
			Verdict:     string(result.Verdict),
			Violations:  strings.Join(result.Strings(), ","),
			CreatedAt:   svc.now(),
		}
		withReading(&a, reading)

		if err := svc.repo.Add(ctx, a); err != nil {
			svc.metrics.AlertPersistenceFailed()
			return evaluation, err
		}

		alert := toAlert(a)
		evaluation.Opened = &alert

		svc.metrics.AlertOpened(db.SourceEngine)
		log.Info().Str("alert_id", alert.ID).Strs("violations", alert.Violations).Msg("alert opened")

		svc.publish(ctx, &AlertCreated{Alert: alert, BoxID: boxID, Timestamp: alert.CreatedAt})

	case classifier.Safe:
		open, err := svc.repo.GetOpen(ctx, boxID, db.SourceEngine)
		if errors.Is(err, db.ErrAlertNotFound) {
			return evaluation, nil
		}
		if err != nil {
			svc.metrics.AlertPersistenceFailed()
			return evaluation, err
		}

		closed, err := svc.repo.Acknowledge(ctx, open.ID, AutoAcknowledger, svc.now())
		if err != nil {
			svc.metrics.AlertPersistenceFailed()
			return evaluation, err
		}

		alert := toAlert(closed)
		evaluation.Closed = &alert

		svc.metrics.AlertAcknowledged(AutoAcknowledger)
		log.Info().Str("alert_id", alert.ID).Msg("box back within safe bounds, alert closed")

		svc.publish(ctx, &AlertClosed{Alert: alert, BoxID: boxID, Timestamp: svc.now()})
	}

	return evaluation, nil
}

// Raise records an operator alert. Operator alerts are never coalesced nor
// closed by the engine.
func (svc *alertSvc) Raise(ctx context.Context, operatorAlert types.OperatorAlert) (types.Alert, error) {
	boxID := strings.TrimSpace(operatorAlert.BoxID)
	if boxID == "" {
		return types.Alert{}, fmt.Errorf("%w: box id is required", ErrValidation)
	}
	if strings.TrimSpace(operatorAlert.Description) == "" {
		return types.Alert{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if operatorAlert.Severity < types.AlertSeverityUnknown || operatorAlert.Severity > types.AlertSeverityHigh {
		return types.Alert{}, fmt.Errorf("%w: severity must be between %d and %d", ErrValidation, types.AlertSeverityUnknown, types.AlertSeverityHigh)
	}

	if _, err := svc.boxes.GetBox(ctx, boxID); err != nil {
		if errors.Is(err, telemetry.ErrBoxNotFound) {
			return types.Alert{}, fmt.Errorf("%w: unknown box %s", ErrValidation, boxID)
		}
		return types.Alert{}, err
	}

	a := db.Alert{
		ID:          uuid.NewString(),
		BoxID:       boxID,
		Source:      db.SourceOperator,
		Status:      db.StatusOpen,
		Severity:    operatorAlert.Severity,
		Description: operatorAlert.Description,
		CreatedAt:   svc.now(),
	}

	if err := svc.repo.Add(ctx, a); err != nil {
		svc.metrics.AlertPersistenceFailed()
		return types.Alert{}, err
	}

	alert := toAlert(a)
	svc.metrics.AlertOpened(db.SourceOperator)
	svc.publish(ctx, &AlertCreated{Alert: alert, BoxID: boxID, Timestamp: alert.CreatedAt})

	return alert, nil
}

// Acknowledge closes an alert. Acknowledging an already acknowledged alert
// returns it unchanged.
func (svc *alertSvc) Acknowledge(ctx context.Context, alertID, acknowledgedBy string) (types.Alert, error) {
	acknowledgedBy = strings.TrimSpace(acknowledgedBy)
	if acknowledgedBy == "" {
		return types.Alert{}, fmt.Errorf("%w: acknowledgedBy is required", ErrValidation)
	}

	current, err := svc.repo.GetByID(ctx, alertID)
	if err != nil {
		return types.Alert{}, err
	}

	if current.Status == db.StatusAcknowledged {
		return toAlert(current), nil
	}

	acked, err := svc.repo.Acknowledge(ctx, alertID, acknowledgedBy, svc.now())
	if err != nil {
		return types.Alert{}, err
	}

	alert := toAlert(acked)
	svc.metrics.AlertAcknowledged("operator")
	svc.publish(ctx, &AlertClosed{Alert: alert, BoxID: alert.BoxID, Timestamp: svc.now()})

	return alert, nil
}

func (svc *alertSvc) GetByID(ctx context.Context, alertID string) (types.Alert, error) {
	a, err := svc.repo.GetByID(ctx, alertID)
	if err != nil {
		return types.Alert{}, err
	}
	return toAlert(a), nil
}

func (svc *alertSvc) Query(ctx context.Context, boxID, state string) ([]types.Alert, error) {
	if state != "" && state != types.AlertStateOpen && state != types.AlertStateAcknowledged {
		return nil, fmt.Errorf("%w: unknown state %s", ErrValidation, state)
	}

	found, err := svc.repo.Query(ctx, boxID, state)
	if err != nil {
		return nil, err
	}

	alerts := make([]types.Alert, 0, len(found))
	for _, a := range found {
		alerts = append(alerts, toAlert(a))
	}

	return alerts, nil
}

func (svc *alertSvc) CountOpen(ctx context.Context) (int64, error) {
	return svc.repo.CountOpen(ctx)
}

func (svc *alertSvc) publish(ctx context.Context, message messaging.TopicMessage) {
	if err := svc.publisher.PublishOnTopic(ctx, message); err != nil {
		log := logging.GetFromContext(ctx)
		log.Error().Err(err).Str("topic", message.TopicName()).Msg("failed to publish alert event")
	}
}

func severityOf(r classifier.Result) int {
	if len(r.Violations) > 1 {
		return types.AlertSeverityHigh
	}
	for _, v := range r.Violations {
		if v == classifier.TemperatureHigh || v == classifier.TemperatureLow {
			return types.AlertSeverityHigh
		}
	}
	return types.AlertSeverityMedium
}
