package ledger

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

func TestZeroStatsFallBackToDefaults(t *testing.T) {
	is := is.New(t)

	stats, err := NewStatic(types.DashboardStats{}).Stats(context.Background())
	is.NoErr(err)
	is.Equal(stats, DefaultStats)
	is.Equal(stats.MealsProvided, int64(12847))
}

func TestConfiguredStatsAreReported(t *testing.T) {
	is := is.New(t)

	l := NewStatic(types.DashboardStats{MealsProvided: 1, CO2Saved: 2, PeopleHelped: 3, Volunteers: 4})

	stats, err := l.Stats(context.Background())
	is.NoErr(err)
	is.Equal(stats.MealsProvided, int64(1))
	is.Equal(stats.Volunteers, int64(4))
}
