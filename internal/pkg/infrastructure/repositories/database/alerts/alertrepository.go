package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	. "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
)

//go:generate moq -rm -out alertrepository_mock.go . AlertRepository

var ErrAlertNotFound = fmt.Errorf("alert not found")
var ErrPersistence = fmt.Errorf("could not persist alert")

type AlertRepository interface {
	Add(ctx context.Context, alert Alert) error
	GetByID(ctx context.Context, alertID string) (Alert, error)
	GetOpen(ctx context.Context, boxID, source string) (Alert, error)
	Query(ctx context.Context, boxID, status string) ([]Alert, error)
	Acknowledge(ctx context.Context, alertID, acknowledgedBy string, at time.Time) (Alert, error)
	CountOpen(ctx context.Context) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(connect ConnectorFunc) (AlertRepository, error) {
	impl, _, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Alert{})
	if err != nil {
		return nil, err
	}

	return &alertRepository{
		db: impl,
	}, nil
}

func (d *alertRepository) Add(ctx context.Context, alert Alert) error {
	logger := logging.GetFromContext(ctx)

	if alert.Status == "" {
		alert.Status = StatusOpen
	}

	err := d.db.WithContext(ctx).Create(&alert).Error
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	logger.Debug().Str("alert_id", alert.ID).Str("box_id", alert.BoxID).Msg("added new alert")

	return nil
}

func (d *alertRepository) GetByID(ctx context.Context, alertID string) (Alert, error) {
	a := Alert{}

	err := d.db.WithContext(ctx).
		Where(&Alert{ID: alertID}).
		First(&a).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Alert{}, ErrAlertNotFound
		}
		return Alert{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return a, nil
}

func (d *alertRepository) GetOpen(ctx context.Context, boxID, source string) (Alert, error) {
	a := Alert{}

	err := d.db.WithContext(ctx).
		Where(&Alert{BoxID: boxID, Source: source, Status: StatusOpen}).
		Order("created_at desc").
		First(&a).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Alert{}, ErrAlertNotFound
		}
		return Alert{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return a, nil
}

func (d *alertRepository) Query(ctx context.Context, boxID, status string) ([]Alert, error) {
	var alerts []Alert

	query := d.db.WithContext(ctx)

	if boxID != "" {
		query = query.Where("box_id = ?", boxID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("created_at desc").Find(&alerts).Error
	if err != nil {
		return []Alert{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return alerts, nil
}

// Acknowledge moves an open alert to the terminal acknowledged state. An alert
// that is already acknowledged is returned unchanged.
func (d *alertRepository) Acknowledge(ctx context.Context, alertID, acknowledgedBy string, at time.Time) (Alert, error) {
	result := d.db.WithContext(ctx).
		Model(&Alert{}).
		Where("id = ? AND status = ?", alertID, StatusOpen).
		Updates(map[string]any{
			"status":          StatusAcknowledged,
			"acknowledged_at": at,
			"acknowledged_by": acknowledgedBy,
		})

	if result.Error != nil {
		return Alert{}, fmt.Errorf("%w: %w", ErrPersistence, result.Error)
	}

	return d.GetByID(ctx, alertID)
}

func (d *alertRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).
		Model(&Alert{}).
		Where("status = ?", StatusOpen).
		Count(&count).
		Error

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return count, nil
}
