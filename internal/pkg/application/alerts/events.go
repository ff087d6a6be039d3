package alerts

import (
	"encoding/json"
	"time"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

const (
	AlertCreatedTopic string = "alerts.alertCreated"
	AlertClosedTopic  string = "alerts.alertClosed"
)

type AlertCreated struct {
	Alert     types.Alert `json:"alert"`
	BoxID     string      `json:"boxId"`
	Timestamp time.Time   `json:"timestamp"`
}

func (a *AlertCreated) ContentType() string {
	return "application/json"
}

func (a *AlertCreated) TopicName() string {
	return AlertCreatedTopic
}

func (a *AlertCreated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type AlertClosed struct {
	Alert     types.Alert `json:"alert"`
	BoxID     string      `json:"boxId"`
	Timestamp time.Time   `json:"timestamp"`
}

func (a *AlertClosed) ContentType() string {
	return "application/json"
}

func (a *AlertClosed) TopicName() string {
	return AlertClosedTopic
}

func (a *AlertClosed) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
