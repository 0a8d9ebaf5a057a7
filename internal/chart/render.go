package chart

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// ErrNoData is returned when there are too few rows to draw a PNG chart.
var ErrNoData = errors.New("not enough data to render chart")

var namedColors = map[string]drawing.Color{
	"blue":   {R: 31, G: 119, B: 180, A: 255},
	"orange": {R: 255, G: 127, B: 14, A: 255},
}

// RenderDualAxisPNG draws the rides/temperature chart server-side. It needs at
// least two distinct dates to establish a date range.
func RenderDualAxisPNG(w io.Writer, rows []types.DailyRecord, style DualAxisStyle) error {
	if distinctDates(rows) < 2 {
		return ErrNoData
	}

	dates := make([]time.Time, len(rows))
	rides := make([]float64, len(rows))
	temps := make([]float64, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
		rides[i] = float64(r.RidesCount)
		temps[i] = r.AverageTemperature
	}

	ch := gochart.Chart{
		Title:      style.Title,
		Width:      style.Width,
		Height:     style.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:           style.XTitle,
			ValueFormatter: gochart.TimeValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name:  style.RidesAxisTitle,
			Range: paddedRange(rides),
		},
		YAxisSecondary: gochart.YAxis{
			Name:  style.TempAxisTitle,
			Range: paddedRange(temps),
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    style.RidesName,
				XValues: dates,
				YValues: rides,
				Style:   gochart.Style{StrokeColor: parseColor(style.RidesColor), StrokeWidth: 1.5},
			},
			gochart.TimeSeries{
				Name:    style.TemperatureName,
				XValues: dates,
				YValues: temps,
				YAxis:   gochart.YAxisSecondary,
				Style:   gochart.Style{StrokeColor: parseColor(style.TemperatureColor), StrokeWidth: 1.5},
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.PNG, w)
}

func distinctDates(rows []types.DailyRecord) int {
	seen := make(map[time.Time]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Date.UTC()] = struct{}{}
	}
	return len(seen)
}

// RenderRankedBarsPNG draws the station ranking as vertical bars, smallest on
// the left.
func RenderRankedBarsPNG(w io.Writer, rows []types.StationRanking, style BarStyle) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	sorted := SortRankings(rows)
	values := make([]float64, len(sorted))
	for i, r := range sorted {
		values[i] = float64(r.RideCount)
	}

	ramp := style.Ramp
	if len(ramp) == 0 {
		ramp = Blues
	}
	colors := ramp.Scale(values)

	bars := make([]gochart.Value, len(sorted))
	for i, r := range sorted {
		c := parseColor(colors[i])
		bars[i] = gochart.Value{
			Label: r.StationName,
			Value: values[i],
			Style: gochart.Style{FillColor: c, StrokeColor: c},
		}
	}

	top := values[len(values)-1]
	if top <= 0 {
		top = 1
	}

	bc := gochart.BarChart{
		Title:      style.Title,
		Width:      1200,
		Height:     style.Height,
		BarWidth:   40,
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Bottom: 220}},
		XAxis:      gochart.Style{TextRotationDegrees: 60},
		YAxis: gochart.YAxis{
			Name:  style.XTitle,
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.05},
		},
		Bars: bars,
	}
	return bc.Render(gochart.PNG, w)
}

// paddedRange widens a flat series so go-chart never sees a zero-width range.
func paddedRange(values []float64) *gochart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// parseColor accepts the named colors used by the figure styles or #rrggbb.
func parseColor(s string) drawing.Color {
	if c, ok := namedColors[s]; ok {
		return c
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return drawing.Color{A: 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{A: 255}
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
