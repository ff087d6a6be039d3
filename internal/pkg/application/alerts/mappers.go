package alerts

import (
	"strings"

	db "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database/alerts"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

func toAlert(a db.Alert) types.Alert {
	alert := types.Alert{
		ID:             a.ID,
		BoxID:          a.BoxID,
		Source:         a.Source,
		State:          a.Status,
		Severity:       a.Severity,
		Description:    a.Description,
		Verdict:        a.Verdict,
		CreatedAt:      a.CreatedAt.UTC(),
		AcknowledgedBy: a.AcknowledgedBy,
	}

	if a.Violations != "" {
		alert.Violations = strings.Split(a.Violations, ",")
	}

	if a.AcknowledgedAt != nil {
		at := a.AcknowledgedAt.UTC()
		alert.AcknowledgedAt = &at
	}

	if a.Source == db.SourceEngine {
		alert.Reading = &types.AlertReading{
			ID:          a.ReadingID,
			Seq:         a.ReadingSeq,
			Temperature: a.Temperature,
			Humidity:    a.Humidity,
			Timestamp:   a.ReadingTimestamp.UTC(),
		}
		if a.Latitude != nil && a.Longitude != nil {
			alert.Reading.Location = &types.Location{Latitude: *a.Latitude, Longitude: *a.Longitude}
		}
	}

	return alert
}

func withReading(a *db.Alert, r telemetry.SensorLog) {
	a.ReadingID = r.ID
	a.ReadingSeq = r.Seq
	a.Temperature = copyOf(r.Temperature)
	a.Humidity = copyOf(r.Humidity)
	a.Latitude = copyOf(r.Latitude)
	a.Longitude = copyOf(r.Longitude)
	a.ReadingTimestamp = r.Timestamp
}

func copyOf(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
