package livestate

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

func TestKeys(t *testing.T) {
	is := is.New(t)

	is.Equal(StateKey("SMARTBOX-001"), "smartbox:SMARTBOX-001:state")
	is.Equal(ChannelName("SMARTBOX-001"), "smartbox:SMARTBOX-001:readings")
}

func TestStateFields(t *testing.T) {
	is := is.New(t)

	temp := 2.5
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	fields := StateFields(types.Reading{
		ID:          3,
		BoxID:       "SMARTBOX-001",
		Temperature: &temp,
		Location:    &types.Location{Latitude: -6.2, Longitude: 106.8},
		Verdict:     types.VerdictUnknown,
		Timestamp:   ts,
	})

	is.Equal(fields["temperature"], 2.5)
	is.Equal(fields["humidity"], "")
	is.Equal(fields["verdict"], "unknown")
	is.Equal(fields["lat"], -6.2)
	is.Equal(fields["timestamp"], ts.Unix())
}
