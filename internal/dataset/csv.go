package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// Column names, canonical first, followed by the names the upstream
// notebooks write.
var (
	colDate        = []string{"date"}
	colRides       = []string{"rides_count", "bike_rides_daily"}
	colTemperature = []string{"average_temperature", "avgTemp"}
	colSeason      = []string{"season"}
	colStation     = []string{"station_name", "start_station_name"}
	colRideCount   = []string{"ride_count", "value"}
	colRiderType   = []string{"rider_type", "member_casual"}
	colDuration    = []string{"duration_minutes", "tripduration_min"}
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// CSVSource reads the tables from CSV files.
type CSVSource struct {
	dailyPath        string
	stationsPath     string
	tripDurationPath string
}

// NewCSVSource returns a source over the given files. tripDurationPath may
// be empty.
func NewCSVSource(dailyPath, stationsPath, tripDurationPath string) *CSVSource {
	return &CSVSource{
		dailyPath:        dailyPath,
		stationsPath:     stationsPath,
		tripDurationPath: tripDurationPath,
	}
}

// DailyRecords reads the daily rides/temperature table.
func (s *CSVSource) DailyRecords(ctx context.Context) ([]types.DailyRecord, error) {
	tbl, err := readFrame(s.dailyPath)
	if err != nil {
		return nil, err
	}

	dates, err := tbl.column(colDate)
	if err != nil {
		return nil, err
	}
	rides, err := tbl.column(colRides)
	if err != nil {
		return nil, err
	}
	temps, err := tbl.column(colTemperature)
	if err != nil {
		return nil, err
	}
	seasons, err := tbl.column(colSeason)
	if err != nil {
		return nil, err
	}

	dateCells := dates.Records()
	rideCells := rides.Float()
	tempCells := temps.Float()
	seasonCells := seasons.Records()

	rows := make([]types.DailyRecord, tbl.rows())
	for i := range rows {
		line := i + 1
		if rows[i].Date, err = parseDate(s.dailyPath, line, dateCells[i]); err != nil {
			return nil, err
		}
		if rows[i].RidesCount, err = count(s.dailyPath, colRides[0], line, rideCells[i]); err != nil {
			return nil, err
		}
		if rows[i].AverageTemperature, err = number(s.dailyPath, colTemperature[0], line, tempCells[i]); err != nil {
			return nil, err
		}
		if rows[i].Season, err = category(s.dailyPath, colSeason[0], line, seasonCells[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// StationRankings reads the top stations table.
func (s *CSVSource) StationRankings(ctx context.Context) ([]types.StationRanking, error) {
	tbl, err := readFrame(s.stationsPath)
	if err != nil {
		return nil, err
	}

	names, err := tbl.column(colStation)
	if err != nil {
		return nil, err
	}
	counts, err := tbl.column(colRideCount)
	if err != nil {
		return nil, err
	}

	nameCells := names.Records()
	countCells := counts.Float()

	rows := make([]types.StationRanking, tbl.rows())
	for i := range rows {
		line := i + 1
		if rows[i].StationName, err = category(s.stationsPath, colStation[0], line, nameCells[i]); err != nil {
			return nil, err
		}
		if rows[i].RideCount, err = count(s.stationsPath, colRideCount[0], line, countCells[i]); err != nil {
			return nil, err
		}
	}
	return rows, validateStations(s.stationsPath, rows)
}

// HasTripDurations reports whether a samples file is configured.
func (s *CSVSource) HasTripDurations() bool {
	return s.tripDurationPath != ""
}

// TripDurations reads the optional trip duration samples.
func (s *CSVSource) TripDurations(ctx context.Context) ([]types.TripDurationSample, error) {
	if !s.HasTripDurations() {
		return nil, fmt.Errorf("no trip duration table configured: %w", types.ErrTableUnavailable)
	}

	tbl, err := readFrame(s.tripDurationPath)
	if err != nil {
		return nil, err
	}

	riders, err := tbl.column(colRiderType)
	if err != nil {
		return nil, err
	}
	durations, err := tbl.column(colDuration)
	if err != nil {
		return nil, err
	}

	riderCells := riders.Records()
	durationCells := durations.Float()

	rows := make([]types.TripDurationSample, tbl.rows())
	for i := range rows {
		line := i + 1
		if rows[i].RiderType, err = category(s.tripDurationPath, colRiderType[0], line, riderCells[i]); err != nil {
			return nil, err
		}
		if rows[i].DurationMinutes, err = number(s.tripDurationPath, colDuration[0], line, durationCells[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// Close is a no-op; files are opened per read.
func (s *CSVSource) Close() error {
	return nil
}

// frame is one loaded table. A file holding only a header row is a valid,
// empty table; gota refuses to build a DataFrame from it, so the header is
// kept on its own.
type frame struct {
	path   string
	header []string
	df     *dataframe.DataFrame
}

// readFrame loads a CSV with every column kept as text so each column can be
// converted and checked on its own. Cells are never mapped to NaN.
func readFrame(path string) (*frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%s: %v: %w", path, err, types.ErrTableUnavailable)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		return nil, mismatch(path, "no header row: %v", err)
	}
	if _, err := r.Read(); errors.Is(err, io.EOF) {
		return &frame{path: path, header: header}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, df.Err, types.ErrSchemaMismatch)
	}
	return &frame{path: path, header: df.Names(), df: &df}, nil
}

func (f *frame) rows() int {
	if f.df == nil {
		return 0
	}
	return f.df.Nrow()
}

// column finds the first of names present in the header.
func (f *frame) column(names []string) (series.Series, error) {
	have := make(map[string]string)
	for _, n := range f.header {
		have[strings.TrimSpace(n)] = n
	}
	for _, n := range names {
		if actual, ok := have[n]; ok {
			if f.df == nil {
				return series.New([]string{}, series.String, actual), nil
			}
			return f.df.Col(actual), nil
		}
	}
	return series.Series{}, mismatch(f.path, "missing column %s (have %s)", strings.Join(names, " or "), strings.Join(f.header, ", "))
}

func parseDate(table string, row int, cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, mismatch(table, "row %d: unparsable date %q", row, cell)
}
