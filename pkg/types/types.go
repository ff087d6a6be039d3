package types

import (
	"time"
)

const (
	VerdictSafe    = "safe"
	VerdictUnsafe  = "unsafe"
	VerdictUnknown = "unknown"
)

const (
	BoxStatusActive   = "active"
	BoxStatusInactive = "inactive"
)

// ReadingPayload is the body of a reading sent by a box. Absent or null
// temperature/humidity values are classified as unknown.
type ReadingPayload struct {
	BoxID       string     `json:"boxId,omitempty"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

type Reading struct {
	ID          uint64    `json:"id"`
	BoxID       string    `json:"boxId"`
	Seq         uint64    `json:"seq"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	Location    *Location `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	ReceivedAt  time.Time `json:"receivedAt"`
	OutOfOrder  bool      `json:"outOfOrder,omitempty"`
	Verdict     string    `json:"verdict"`
	Violations  []string  `json:"violations,omitempty"`
}

type IngestResult struct {
	Reading
	Alert      *Alert `json:"alert,omitempty"`
	AlertError string `json:"alertError,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type BoxSummary struct {
	ID              string     `json:"id"`
	Location        string     `json:"location"`
	LastTemperature *float64   `json:"lastTemperature"`
	LastHumidity    *float64   `json:"lastHumidity"`
	LastVerdict     string     `json:"lastVerdict,omitempty"`
	LastSeen        *time.Time `json:"lastSeen,omitempty"`
	Position        *Location  `json:"position,omitempty"`
	Readings        uint64     `json:"readings"`
	Status          string     `json:"status"`
}

type BoxRegistration struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

type BoxUpdate struct {
	Location *string `json:"location,omitempty"`
	Status   *string `json:"status,omitempty"`
}

const (
	AlertStateOpen         = "open"
	AlertStateAcknowledged = "acknowledged"

	AlertSourceEngine   = "engine"
	AlertSourceOperator = "operator"
)

const (
	AlertSeverityUnknown = 0
	AlertSeverityLow     = 1
	AlertSeverityMedium  = 2
	AlertSeverityHigh    = 3
)

type Alert struct {
	ID             string        `json:"id"`
	BoxID          string        `json:"boxId"`
	Source         string        `json:"source"`
	State          string        `json:"state"`
	Severity       int           `json:"severity"`
	Description    string        `json:"description,omitempty"`
	Verdict        string        `json:"verdict,omitempty"`
	Violations     []string      `json:"violations,omitempty"`
	Reading        *AlertReading `json:"reading,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
	AcknowledgedBy string        `json:"acknowledgedBy,omitempty"`
}

// AlertReading is the copy of the triggering reading an alert keeps for itself.
type AlertReading struct {
	ID          uint64    `json:"id"`
	Seq         uint64    `json:"seq"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	Location    *Location `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type OperatorAlert struct {
	BoxID       string `json:"boxId"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
}

type Acknowledgement struct {
	AcknowledgedBy string `json:"acknowledgedBy"`
}

// DashboardStats are program level counters supplied by the ledger.
type DashboardStats struct {
	MealsProvided int64 `json:"mealsProvided" yaml:"mealsProvided"`
	CO2Saved      int64 `json:"co2Saved" yaml:"co2Saved"`
	PeopleHelped  int64 `json:"peopleHelped" yaml:"peopleHelped"`
	Volunteers    int64 `json:"volunteers" yaml:"volunteers"`
}

type Dashboard struct {
	DashboardStats
	Boxes      int   `json:"boxes"`
	OpenAlerts int64 `json:"openAlerts"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
