package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/internal/types"
)

func mismatch(table, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", table, fmt.Sprintf(format, args...), types.ErrSchemaMismatch)
}

// count converts a numeric cell to a non-negative whole number.
func count(table, column string, row int, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, mismatch(table, "row %d: column %s is not numeric", row, column)
	}
	if v < 0 {
		return 0, mismatch(table, "row %d: column %s is negative (%v)", row, column, v)
	}
	if v != math.Trunc(v) {
		return 0, mismatch(table, "row %d: column %s is not a whole number (%v)", row, column, v)
	}
	return int(v), nil
}

func number(table, column string, row int, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, mismatch(table, "row %d: column %s is not numeric", row, column)
	}
	return v, nil
}

func category(table, column string, row int, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", mismatch(table, "row %d: column %s is empty", row, column)
	}
	return v, nil
}

func validateDaily(table string, rows []types.DailyRecord) error {
	for i, r := range rows {
		if r.RidesCount < 0 {
			return mismatch(table, "row %d: rides_count is negative (%d)", i+1, r.RidesCount)
		}
		if strings.TrimSpace(r.Season) == "" {
			return mismatch(table, "row %d: season is empty", i+1)
		}
	}
	return nil
}

func validateStations(table string, rows []types.StationRanking) error {
	for i, r := range rows {
		if r.RideCount < 0 {
			return mismatch(table, "row %d: ride_count is negative (%d)", i+1, r.RideCount)
		}
	}
	if len(rows) != ExpectedStationRows {
		log.Warnw("station ranking does not have the expected number of rows",
			"table", table, "rows", len(rows), "expected", ExpectedStationRows)
	}
	return nil
}

func validateDurations(table string, rows []types.TripDurationSample) error {
	for i, r := range rows {
		if strings.TrimSpace(r.RiderType) == "" {
			return mismatch(table, "row %d: rider_type is empty", i+1)
		}
	}
	return nil
}
