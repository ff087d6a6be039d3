package telemetry

import (
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/classifier"
	telemetryRepo "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

func toReading(l telemetryRepo.SensorLog, result classifier.Result) types.Reading {
	r := types.Reading{
		ID:          l.ID,
		BoxID:       l.BoxID,
		Seq:         l.Seq,
		Temperature: l.Temperature,
		Humidity:    l.Humidity,
		Location:    toLocation(l),
		Timestamp:   l.Timestamp,
		ReceivedAt:  l.ReceivedAt,
		OutOfOrder:  l.OutOfOrder,
		Verdict:     string(result.Verdict),
	}

	if len(result.Violations) > 0 {
		r.Violations = result.Strings()
	}

	return r
}

func toLocation(l telemetryRepo.SensorLog) *types.Location {
	if l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &types.Location{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

func toSensorLog(p types.ReadingPayload) telemetryRepo.SensorLog {
	l := telemetryRepo.SensorLog{
		Temperature: p.Temperature,
		Humidity:    p.Humidity,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
	if p.Timestamp != nil {
		l.Timestamp = *p.Timestamp
	}
	return l
}

func toBoxSummary(b telemetryRepo.Box, thresholds classifier.Thresholds) types.BoxSummary {
	s := types.BoxSummary{
		ID:       b.ID,
		Location: b.Location,
		Readings: b.Readings,
		Status:   b.Status,
	}

	if b.Last != nil {
		s.LastTemperature = b.Last.Temperature
		s.LastHumidity = b.Last.Humidity
		s.LastVerdict = string(thresholds.Classify(b.Last.Temperature, b.Last.Humidity).Verdict)
		s.Position = toLocation(*b.Last)
		seen := b.Last.ReceivedAt
		s.LastSeen = &seen
	}

	return s
}
