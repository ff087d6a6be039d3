package telemetry

import (
	"encoding/json"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

const ReadingStoredTopic string = "telemetry.readingStored"

type ReadingStored struct {
	types.Reading
}

func (r *ReadingStored) ContentType() string {
	return "application/json"
}

func (r *ReadingStored) TopicName() string {
	return ReadingStoredTopic
}

func (r *ReadingStored) Body() []byte {
	b, _ := json.Marshal(r.Reading)
	return b
}
