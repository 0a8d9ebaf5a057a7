package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/citibike-dashboard/internal/types"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestCSVSourceDailyRecords(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("canonical columns", func(t *testing.T) {
		path := writeFile(t, dir, "daily.csv", "date,rides_count,average_temperature,season\n"+
			"2022-01-01,20428,11.6,winter\n"+
			"2022-07-01,120000,80.2,summer\n")
		rows, err := NewCSVSource(path, "", "").DailyRecords(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].RidesCount != 20428 || rows[0].Season != "winter" || rows[0].AverageTemperature != 11.6 {
			t.Errorf("unexpected first row: %+v", rows[0])
		}
		if got := rows[1].Date.Format("2006-01-02"); got != "2022-07-01" {
			t.Errorf("expected 2022-07-01, got %s", got)
		}
	})

	t.Run("upstream column names", func(t *testing.T) {
		path := writeFile(t, dir, "daily_sub_df.csv", "date,bike_rides_daily,avgTemp,season\n"+
			"2022-01-01 00:00:00,20428,11.6,winter\n")
		rows, err := NewCSVSource(path, "", "").DailyRecords(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].RidesCount != 20428 {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})

	t.Run("header only", func(t *testing.T) {
		path := writeFile(t, dir, "empty.csv", "date,rides_count,average_temperature,season\n")
		rows, err := NewCSVSource(path, "", "").DailyRecords(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("expected an empty, non-nil slice, got %#v", rows)
		}
	})

	schemaErrors := []struct {
		name    string
		content string
	}{
		{"missing column", "date,rides_count,season\n2022-01-01,1,winter\n"},
		{"header only with missing column", "date,rides_count,season\n"},
		{"empty file", ""},
		{"non-numeric rides", "date,rides_count,average_temperature,season\n2022-01-01,many,11.6,winter\n"},
		{"negative rides", "date,rides_count,average_temperature,season\n2022-01-01,-4,11.6,winter\n"},
		{"fractional rides", "date,rides_count,average_temperature,season\n2022-01-01,4.5,11.6,winter\n"},
		{"bad date", "date,rides_count,average_temperature,season\nJan 1,4,11.6,winter\n"},
		{"empty season", "date,rides_count,average_temperature,season\n2022-01-01,4,11.6,\n"},
	}
	for _, tt := range schemaErrors {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.csv", tt.content)
			_, err := NewCSVSource(path, "", "").DailyRecords(ctx)
			if !errors.Is(err, types.ErrSchemaMismatch) {
				t.Errorf("expected ErrSchemaMismatch, got %v", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVSource(filepath.Join(dir, "nope.csv"), "", "").DailyRecords(ctx)
		if !errors.Is(err, types.ErrTableUnavailable) {
			t.Errorf("expected ErrTableUnavailable, got %v", err)
		}
	})
}

func TestCSVSourceStationRankings(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("upstream column names keep file order", func(t *testing.T) {
		path := writeFile(t, dir, "top_stations_df.csv", "start_station_name,value\n"+
			"W 21 St & 6 Ave,129016\n"+
			"West St & Chambers St,123214\n"+
			"Broadway & W 58 St,115128\n")
		rows, err := NewCSVSource("", path, "").StationRankings(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[0].StationName != "W 21 St & 6 Ave" || rows[2].RideCount != 115128 {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})

	t.Run("header only", func(t *testing.T) {
		path := writeFile(t, dir, "empty.csv", "start_station_name,value\n")
		rows, err := NewCSVSource("", path, "").StationRankings(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("expected an empty, non-nil slice, got %#v", rows)
		}
	})

	t.Run("text that looks like a missing value", func(t *testing.T) {
		path := writeFile(t, dir, "na.csv", "station_name,ride_count\nNA,5\nNaN Plaza,3\n")
		rows, err := NewCSVSource("", path, "").StationRankings(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 || rows[0].StationName != "NA" || rows[0].RideCount != 5 {
			t.Errorf("expected station names passed through unchanged, got %+v", rows)
		}
	})

	t.Run("NA count", func(t *testing.T) {
		path := writeFile(t, dir, "na_count.csv", "station_name,ride_count\nA,NA\n")
		_, err := NewCSVSource("", path, "").StationRankings(ctx)
		if !errors.Is(err, types.ErrSchemaMismatch) {
			t.Errorf("expected ErrSchemaMismatch, got %v", err)
		}
	})

	t.Run("negative count", func(t *testing.T) {
		path := writeFile(t, dir, "neg.csv", "station_name,ride_count\nA,-1\n")
		_, err := NewCSVSource("", path, "").StationRankings(ctx)
		if !errors.Is(err, types.ErrSchemaMismatch) {
			t.Errorf("expected ErrSchemaMismatch, got %v", err)
		}
	})
}

func TestCSVSourceTripDurations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		src := NewCSVSource("", "", "")
		if src.HasTripDurations() {
			t.Fatal("expected no trip durations")
		}
		if _, err := src.TripDurations(ctx); !errors.Is(err, types.ErrTableUnavailable) {
			t.Errorf("expected ErrTableUnavailable, got %v", err)
		}
	})

	t.Run("aliases", func(t *testing.T) {
		path := writeFile(t, dir, "trips.csv", "member_casual,tripduration_min\n"+
			"member,8.5\ncasual,22\nmember,11\n")
		src := NewCSVSource("", "", path)
		rows, err := src.TripDurations(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 3 || rows[1].RiderType != "casual" || rows[1].DurationMinutes != 22 {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})
}

func TestCSVSourceTripDurationsHeaderOnly(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"canonical header", "rider_type,duration_minutes\n", false},
		{"alias header", "member_casual,tripduration_min\n", false},
		{"header missing duration", "member_casual\n", true},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "trips.csv", tt.content)
			rows, err := NewCSVSource("", "", path).TripDurations(context.Background())
			if tt.wantErr {
				if !errors.Is(err, types.ErrSchemaMismatch) {
					t.Errorf("expected ErrSchemaMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rows == nil || len(rows) != 0 {
				t.Errorf("expected an empty, non-nil slice, got %#v", rows)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DataData
		wantErr bool
	}{
		{"default is csv", config.DataData{}, false},
		{"csv", config.DataData{Source: config.SourceCSV}, false},
		{"postgres without section", config.DataData{Source: config.SourcePostgres}, true},
		{"unknown", config.DataData{Source: "parquet"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if _, ok := src.(*CSVSource); !ok {
					t.Errorf("expected *CSVSource, got %T", src)
				}
			}
		})
	}
}
