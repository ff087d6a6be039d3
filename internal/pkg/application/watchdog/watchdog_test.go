package watchdog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	telemetryRepo "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
)

func TestSilentBoxIsReportedOnce(t *testing.T) {
	is, ctx, store, pub := testSetup(t)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	appendAt(t, store, "SMARTBOX-001", start)
	appendAt(t, store, "SMARTBOX-002", start.Add(9*time.Minute))

	w := New(store, pub, Config{NotObservedAfter: 10 * time.Minute}).(*watchdog)
	w.now = func() time.Time { return start.Add(15 * time.Minute) }

	w.check(ctx)
	w.check(ctx)

	calls := pub.PublishOnTopicCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Message.TopicName(), BoxNotObservedTopic)

	msg := BoxNotObserved{}
	is.NoErr(json.Unmarshal(calls[0].Message.Body(), &msg))
	is.Equal(msg.BoxID, "SMARTBOX-001")
	is.True(msg.LastSeen.Equal(start))
}

func TestInactiveBoxesAreIgnored(t *testing.T) {
	is, ctx, store, pub := testSetup(t)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	appendAt(t, store, "SMARTBOX-001", start)

	inactive := telemetryRepo.StatusInactive
	_, err := store.UpdateBox(ctx, "SMARTBOX-001", nil, &inactive)
	is.NoErr(err)

	_, err = store.RegisterBox(ctx, "SMARTBOX-003", "never reported")
	is.NoErr(err)

	w := New(store, pub, Config{}).(*watchdog)
	w.now = func() time.Time { return start.Add(time.Hour) }
	w.check(ctx)

	is.Equal(len(pub.PublishOnTopicCalls()), 0)
}

func TestStartAndStop(t *testing.T) {
	_, ctx, store, pub := testSetup(t)

	w := New(store, pub, Config{Interval: time.Millisecond})
	w.Start(ctx)
	time.Sleep(5 * time.Millisecond)
	w.Stop()
}

func testSetup(t *testing.T) (*is.I, context.Context, telemetryRepo.Store, *messaging.PublisherMock) {
	is := is.New(t)

	pub := &messaging.PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return is, context.Background(), telemetryRepo.New(telemetryRepo.Config{}), pub
}

func appendAt(t *testing.T, store telemetryRepo.Store, boxID string, at time.Time) {
	temp, hum := 2.0, 50.0
	_, err := store.AppendReading(context.Background(), boxID, telemetryRepo.SensorLog{
		Temperature: &temp,
		Humidity:    &hum,
		ReceivedAt:  at,
	})
	if err != nil {
		t.Fatal(err)
	}
}
