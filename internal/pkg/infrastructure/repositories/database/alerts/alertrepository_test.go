package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/is"
	"github.com/rs/zerolog"

	. "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database"
)

func TestAddAndGetAlert(t *testing.T) {
	is, ctx, r := testSetupAlertRepository(t)

	temp := 6.0
	a := newAlert("SMARTBOX-001", SourceEngine)
	a.Temperature = &temp

	err := r.Add(ctx, a)
	is.NoErr(err)

	fromDb, err := r.GetByID(ctx, a.ID)
	is.NoErr(err)
	is.Equal(fromDb.BoxID, "SMARTBOX-001")
	is.Equal(fromDb.Status, StatusOpen)
	is.Equal(*fromDb.Temperature, 6.0)
}

func TestThatUnknownAlertIsNotFound(t *testing.T) {
	is, ctx, r := testSetupAlertRepository(t)

	_, err := r.GetByID(ctx, "nosuchalert")
	is.True(errors.Is(err, ErrAlertNotFound))

	_, err = r.GetOpen(ctx, "box", SourceEngine)
	is.True(errors.Is(err, ErrAlertNotFound))
}

func TestGetOpenFiltersOnSource(t *testing.T) {
	is, ctx, r := testSetupAlertRepository(t)

	is.NoErr(r.Add(ctx, newAlert("box", SourceOperator)))

	_, err := r.GetOpen(ctx, "box", SourceEngine)
	is.True(errors.Is(err, ErrAlertNotFound))

	engine := newAlert("box", SourceEngine)
	is.NoErr(r.Add(ctx, engine))

	open, err := r.GetOpen(ctx, "box", SourceEngine)
	is.NoErr(err)
	is.Equal(open.ID, engine.ID)
}

func TestAcknowledgeIsTerminal(t *testing.T) {
	is, ctx, r := testSetupAlertRepository(t)

	a := newAlert("box", SourceEngine)
	is.NoErr(r.Add(ctx, a))

	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	acked, err := r.Acknowledge(ctx, a.ID, "auto", first)
	is.NoErr(err)
	is.Equal(acked.Status, StatusAcknowledged)
	is.Equal(acked.AcknowledgedBy, "auto")

	again, err := r.Acknowledge(ctx, a.ID, "operator", first.Add(time.Hour))
	is.NoErr(err)
	is.Equal(again.AcknowledgedBy, "auto")
	is.True(again.AcknowledgedAt.Equal(first))

	_, err = r.Acknowledge(ctx, "nosuchalert", "operator", first)
	is.True(errors.Is(err, ErrAlertNotFound))
}

func TestQueryAndCountOpen(t *testing.T) {
	is, ctx, r := testSetupAlertRepository(t)

	a := newAlert("box-1", SourceEngine)
	is.NoErr(r.Add(ctx, a))
	is.NoErr(r.Add(ctx, newAlert("box-1", SourceOperator)))
	is.NoErr(r.Add(ctx, newAlert("box-2", SourceEngine)))

	_, err := r.Acknowledge(ctx, a.ID, "auto", time.Now().UTC())
	is.NoErr(err)

	count, err := r.CountOpen(ctx)
	is.NoErr(err)
	is.Equal(count, int64(2))

	forBox, err := r.Query(ctx, "box-1", "")
	is.NoErr(err)
	is.Equal(len(forBox), 2)

	open, err := r.Query(ctx, "box-1", StatusOpen)
	is.NoErr(err)
	is.Equal(len(open), 1)
	is.Equal(open[0].Source, SourceOperator)

	all, err := r.Query(ctx, "", "")
	is.NoErr(err)
	is.Equal(len(all), 3)
}

func newAlert(boxID, source string) Alert {
	return Alert{
		ID:          uuid.NewString(),
		BoxID:       boxID,
		Source:      source,
		Status:      StatusOpen,
		Severity:    2,
		Description: "desc",
		CreatedAt:   time.Now().UTC(),
	}
}

func testSetupAlertRepository(t *testing.T) (*is.I, context.Context, AlertRepository) {
	is := is.New(t)

	r, err := NewAlertRepository(NewSQLiteConnector(zerolog.Logger{}))
	is.NoErr(err)

	return is, context.Background(), r
}
