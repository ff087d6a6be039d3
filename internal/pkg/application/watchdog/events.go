package watchdog

import (
	"encoding/json"
	"time"
)

const BoxNotObservedTopic string = "watchdog.boxNotObserved"

type BoxNotObserved struct {
	BoxID      string    `json:"boxId"`
	LastSeen   time.Time `json:"lastSeen"`
	ObservedAt time.Time `json:"observedAt"`
}

func (l *BoxNotObserved) ContentType() string {
	return "application/json"
}

func (l *BoxNotObserved) TopicName() string {
	return BoxNotObservedTopic
}

func (l *BoxNotObserved) Body() []byte {
	b, _ := json.Marshal(l)
	return b
}
