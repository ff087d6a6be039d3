// Package ledger supplies the program level counters shown on the dashboard.
// The counters are owned by an external ledger and are never derived from
// telemetry.
package ledger

import (
	"context"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

var DefaultStats = types.DashboardStats{
	MealsProvided: 12847,
	CO2Saved:      892,
	PeopleHelped:  5432,
	Volunteers:    234,
}

//go:generate moq -rm -out ledger_mock.go . Ledger
type Ledger interface {
	Stats(ctx context.Context) (types.DashboardStats, error)
}

type Static struct {
	stats types.DashboardStats
}

// NewStatic returns a ledger that always reports the given counters. A zero
// value falls back to DefaultStats.
func NewStatic(stats types.DashboardStats) *Static {
	if stats == (types.DashboardStats{}) {
		stats = DefaultStats
	}
	return &Static{stats: stats}
}

func (l *Static) Stats(ctx context.Context) (types.DashboardStats, error) {
	return l.stats, nil
}
