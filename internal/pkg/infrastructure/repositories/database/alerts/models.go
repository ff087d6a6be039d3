package alerts

import (
	"time"
)

const (
	StatusOpen         = "open"
	StatusAcknowledged = "acknowledged"

	SourceEngine   = "engine"
	SourceOperator = "operator"
)

// Alert is the persisted form of an alert. The reading values are copied from
// the triggering reading so that the alert survives eviction of that reading.
type Alert struct {
	ID          string `gorm:"primaryKey"`
	BoxID       string `gorm:"index"`
	Source      string `gorm:"index"`
	Status      string `gorm:"index"`
	Severity    int
	Description string
	Verdict     string
	Violations  string

	ReadingID        uint64
	ReadingSeq       uint64
	Temperature      *float64
	Humidity         *float64
	Latitude         *float64
	Longitude        *float64
	ReadingTimestamp time.Time

	CreatedAt      time.Time
	UpdatedAt      time.Time
	AcknowledgedAt *time.Time
	AcknowledgedBy string
}
