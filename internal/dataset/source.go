// Package dataset loads the externally published tables for a page view.
// Nothing is cached: every call reads the source again.
package dataset

import (
	"context"
	"fmt"

	"github.com/chrissnell/citibike-dashboard/internal/types"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

// Source reads the dashboard's input tables.
type Source interface {
	DailyRecords(ctx context.Context) ([]types.DailyRecord, error)
	StationRankings(ctx context.Context) ([]types.StationRanking, error)
	TripDurations(ctx context.Context) ([]types.TripDurationSample, error)
	HasTripDurations() bool
	Close() error
}

// ExpectedStationRows is the size of the published station ranking.
const ExpectedStationRows = 20

// NewSource builds the source named by cfg.Source.
func NewSource(cfg config.DataData) (Source, error) {
	switch cfg.Source {
	case config.SourceCSV, "":
		return NewCSVSource(cfg.DailyCSV, cfg.StationsCSV, cfg.TripDurationCSV), nil
	case config.SourcePostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres source selected but not configured")
		}
		return NewSQLSource(*cfg.Postgres)
	default:
		return nil, fmt.Errorf("unsupported data source: %s", cfg.Source)
	}
}
