package dataset

import (
	"context"
	"fmt"

	"github.com/chrissnell/citibike-dashboard/internal/database"
	"github.com/chrissnell/citibike-dashboard/internal/types"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

// SQLSource reads the tables from Postgres/TimescaleDB.
type SQLSource struct {
	client *database.Client
}

// NewSQLSource connects to the configured database.
func NewSQLSource(cfg config.PostgresData) (*SQLSource, error) {
	client, err := database.NewClient(cfg.ConnectionString, database.Tables{
		Daily:        cfg.DailyTable,
		Stations:     cfg.StationsTable,
		TripDuration: cfg.TripDurationTable,
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to aggregates database: %w", err)
	}
	return &SQLSource{client: client}, nil
}

func (s *SQLSource) DailyRecords(ctx context.Context) ([]types.DailyRecord, error) {
	rows, err := s.client.DailyRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrTableUnavailable)
	}
	return rows, validateDaily("daily table", rows)
}

func (s *SQLSource) StationRankings(ctx context.Context) ([]types.StationRanking, error) {
	rows, err := s.client.StationRankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrTableUnavailable)
	}
	return rows, validateStations("stations table", rows)
}

func (s *SQLSource) HasTripDurations() bool {
	return s.client.HasTripDurations()
}

func (s *SQLSource) TripDurations(ctx context.Context) ([]types.TripDurationSample, error) {
	if !s.HasTripDurations() {
		return nil, fmt.Errorf("no trip duration table configured: %w", types.ErrTableUnavailable)
	}
	rows, err := s.client.TripDurations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrTableUnavailable)
	}
	return rows, validateDurations("trip duration table", rows)
}

func (s *SQLSource) Close() error {
	return s.client.Close()
}
