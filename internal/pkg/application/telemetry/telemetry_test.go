package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/diwise/smartbox-telemetry/internal/pkg/application/alerts"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/ledger"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database"
	alertsDb "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database/alerts"
	telemetryRepo "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

func TestIngestAndQuerySmartBox(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	safe, err := svc.Ingest(ctx, "SMARTBOX-001", payload(2.0, 50))
	is.NoErr(err)
	is.Equal(safe.Verdict, types.VerdictSafe)
	is.True(safe.Alert == nil)
	is.True(safe.ID > 0)

	unsafe, err := svc.Ingest(ctx, "SMARTBOX-001", payload(6.0, 50))
	is.NoErr(err)
	is.Equal(unsafe.Verdict, types.VerdictUnsafe)
	is.True(unsafe.Alert != nil)
	is.Equal(unsafe.Alert.Reading.ID, unsafe.ID)
	is.Equal(unsafe.Alert.State, types.AlertStateOpen)

	recent, err := svc.GetRecent(ctx, "SMARTBOX-001", 6)
	is.NoErr(err)
	is.Equal(len(recent), 2)
	is.Equal(recent[0].ID, unsafe.ID)
	is.Equal(recent[0].Verdict, types.VerdictUnsafe)
	is.Equal(recent[1].ID, safe.ID)
	is.Equal(recent[1].Verdict, types.VerdictSafe)
}

func TestGetRecentForUnknownBoxIsEmpty(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	recent, err := svc.GetRecent(ctx, "SMARTBOX-404", 6)
	is.NoErr(err)
	is.True(recent != nil)
	is.Equal(len(recent), 0)
}

func TestGetRecentLimits(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	for i := 0; i < 10; i++ {
		_, err := svc.Ingest(ctx, "SMARTBOX-001", payload(2.0, 50))
		is.NoErr(err)
	}

	recent, err := svc.GetRecent(ctx, "SMARTBOX-001", 0)
	is.NoErr(err)
	is.Equal(len(recent), DefaultLimit)

	recent, err = svc.GetRecent(ctx, "SMARTBOX-001", 1000)
	is.NoErr(err)
	is.Equal(len(recent), 10)
}

func TestThatRecentReadingsFollowArrivalOrder(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{10 * time.Minute, 20 * time.Minute, 15 * time.Minute} {
		p := payload(2.0, 50)
		ts := base.Add(offset)
		p.Timestamp = &ts
		_, err := svc.Ingest(ctx, "SMARTBOX-001", p)
		is.NoErr(err)
	}

	recent, err := svc.GetRecent(ctx, "SMARTBOX-001", 6)
	is.NoErr(err)
	is.Equal(len(recent), 3)
	is.Equal(recent[0].Seq, uint64(3))
	is.True(recent[0].OutOfOrder)
	is.Equal(recent[1].Seq, uint64(2))
	is.Equal(recent[2].Seq, uint64(1))
}

func TestIngestValidation(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	_, err := svc.Ingest(ctx, "", payload(2.0, 50))
	is.True(errors.Is(err, ErrValidation))

	p := payload(2.0, 50)
	p.BoxID = "SMARTBOX-002"
	_, err = svc.Ingest(ctx, "SMARTBOX-001", p)
	is.True(errors.Is(err, ErrValidation))
}

func TestReadingIsKeptWhenAlertWriteFails(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	store := telemetryRepo.New(telemetryRepo.Config{})
	alertSvc := &alerts.AlertServiceMock{
		EvaluateFunc: func(ctx context.Context, boxID string, reading telemetryRepo.SensorLog) (alerts.Evaluation, error) {
			return alerts.Evaluation{}, fmt.Errorf("%w: disk full", alerts.ErrPersistence)
		},
	}
	svc := New(store, alertSvc, ledger.NewStatic(ledger.DefaultStats))

	result, err := svc.Ingest(ctx, "SMARTBOX-001", payload(6.0, 50))
	is.NoErr(err)
	is.True(result.AlertError != "")

	recent, err := svc.GetRecent(ctx, "SMARTBOX-001", 1)
	is.NoErr(err)
	is.Equal(recent[0].ID, result.ID)
}

func TestDashboardIsIndependentOfTelemetry(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	before, err := svc.GetDashboard(ctx)
	is.NoErr(err)
	is.Equal(before.DashboardStats, ledger.DefaultStats)
	is.Equal(before.Boxes, 0)

	for i := 0; i < 5; i++ {
		_, err := svc.Ingest(ctx, fmt.Sprintf("SMARTBOX-%03d", i), payload(6.0, 50))
		is.NoErr(err)
	}

	after, err := svc.GetDashboard(ctx)
	is.NoErr(err)
	is.Equal(after.DashboardStats, before.DashboardStats)
	is.Equal(after.Boxes, 5)
	is.Equal(after.OpenAlerts, int64(5))
}

func TestConcurrentUnsafeReadingsForOneBoxOpenOneAlert(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	const n = 25

	var wg sync.WaitGroup
	results := make(chan types.IngestResult, n*2)

	for i := 0; i < n; i++ {
		for _, boxID := range []string{"SMARTBOX-001", "SMARTBOX-002"} {
			wg.Add(1)
			go func(boxID string) {
				defer wg.Done()
				r, err := svc.Ingest(ctx, boxID, payload(6.0, 50))
				if err == nil {
					results <- r
				}
			}(boxID)
		}
	}

	wg.Wait()
	close(results)

	opened := map[string]int{}
	seqs := map[string][]int{}
	for r := range results {
		if r.Alert != nil {
			opened[r.BoxID]++
		}
		seqs[r.BoxID] = append(seqs[r.BoxID], int(r.Seq))
	}

	is.Equal(opened["SMARTBOX-001"], 1)
	is.Equal(opened["SMARTBOX-002"], 1)

	for _, s := range seqs {
		sort.Ints(s)
		is.Equal(len(s), n)
		for i := range s {
			is.Equal(s[i], i+1)
		}
	}
}

func TestStoredReadingsArePublished(t *testing.T) {
	is, ctx, svc, pub := testSetup(t)

	_, err := svc.Ingest(ctx, "SMARTBOX-001", payload(2.0, 50))
	is.NoErr(err)

	calls := pub.PublishOnTopicCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Message.TopicName(), ReadingStoredTopic)
}

func TestSlowPublisherDoesNotBlockIngestForTheBox(t *testing.T) {
	is := is.New(t)

	repo, err := alertsDb.NewAlertRepository(database.NewSQLiteConnector(zerolog.Logger{}))
	is.NoErr(err)

	release := make(chan struct{})
	var once sync.Once
	pub := &messaging.PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			blocked := false
			once.Do(func() { blocked = true })
			if blocked {
				<-release
			}
			return nil
		},
	}

	store := telemetryRepo.New(telemetryRepo.Config{})
	svc := New(store, alerts.New(repo, store, nil), ledger.NewStatic(ledger.DefaultStats), WithPublisher(pub))
	ctx := context.Background()

	first := make(chan error, 1)
	go func() {
		_, err := svc.Ingest(ctx, "SMARTBOX-001", payload(2.0, 50))
		first <- err
	}()

	is.True(waitFor(func() bool { return len(pub.PublishOnTopicCalls()) == 1 }))

	second := make(chan error, 1)
	go func() {
		_, err := svc.Ingest(ctx, "SMARTBOX-001", payload(3.0, 50))
		second <- err
	}()

	select {
	case err := <-second:
		is.NoErr(err)
	case <-time.After(time.Second):
		t.Fatal("ingest waited for the publisher of an earlier reading")
	}

	close(release)
	is.NoErr(<-first)

	recent, err := svc.GetRecent(ctx, "SMARTBOX-001", 6)
	is.NoErr(err)
	is.Equal(len(recent), 2)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestRegisterAndUpdateBox(t *testing.T) {
	is, ctx, svc, _ := testSetup(t)

	b, err := svc.RegisterBox(ctx, types.BoxRegistration{ID: "SMARTBOX-009", Location: "Community Center"})
	is.NoErr(err)
	is.Equal(b.Status, types.BoxStatusActive)
	is.True(b.LastSeen == nil)

	_, err = svc.RegisterBox(ctx, types.BoxRegistration{ID: "SMARTBOX-009"})
	is.True(errors.Is(err, ErrBoxAlreadyExists))

	inactive := types.BoxStatusInactive
	b, err = svc.UpdateBox(ctx, "SMARTBOX-009", types.BoxUpdate{Status: &inactive})
	is.NoErr(err)
	is.Equal(b.Status, types.BoxStatusInactive)
	is.Equal(b.Location, "Community Center")

	_, err = svc.Ingest(ctx, "SMARTBOX-009", payload(3.0, 45))
	is.NoErr(err)

	b, err = svc.GetBox(ctx, "SMARTBOX-009")
	is.NoErr(err)
	is.Equal(*b.LastTemperature, 3.0)
	is.Equal(b.LastVerdict, types.VerdictSafe)
	is.Equal(b.Status, types.BoxStatusInactive)

	_, err = svc.GetBox(ctx, "SMARTBOX-404")
	is.True(errors.Is(err, ErrBoxNotFound))

	boxes, err := svc.ListBoxes(ctx)
	is.NoErr(err)
	is.Equal(len(boxes), 1)
}

func testSetup(t *testing.T) (*is.I, context.Context, TelemetryService, *messaging.PublisherMock) {
	is := is.New(t)

	repo, err := alertsDb.NewAlertRepository(database.NewSQLiteConnector(zerolog.Logger{}))
	is.NoErr(err)

	pub := &messaging.PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	store := telemetryRepo.New(telemetryRepo.Config{})
	alertSvc := alerts.New(repo, store, nil)

	svc := New(store, alertSvc, ledger.NewStatic(ledger.DefaultStats), WithPublisher(pub))

	return is, context.Background(), svc, pub
}

func payload(temperature, humidity float64) types.ReadingPayload {
	return types.ReadingPayload{Temperature: &temperature, Humidity: &humidity}
}
