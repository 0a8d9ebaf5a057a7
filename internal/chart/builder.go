package chart

import (
	"sort"

	"github.com/chrissnell/citibike-dashboard/internal/filter"
	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// DateLayout is the x-axis date format.
const DateLayout = "2006-01-02"

// DualAxis overlays daily rides (primary axis) and average temperature
// (secondary axis) on a shared date axis.
func DualAxis(rows []types.DailyRecord, style DualAxisStyle) *Figure {
	dates := make([]string, len(rows))
	rides := make([]int, len(rows))
	temps := make([]float64, len(rows))
	for i, r := range rows {
		dates[i] = r.Date.Format(DateLayout)
		rides[i] = r.RidesCount
		temps[i] = r.AverageTemperature
	}

	fig := &Figure{
		Data: []Trace{
			{
				Type: "scatter",
				Mode: "lines",
				Name: style.RidesName,
				X:    dates,
				Y:    rides,
				Line: &Line{Color: style.RidesColor},
			},
			{
				Type:  "scatter",
				Mode:  "lines",
				Name:  style.TemperatureName,
				X:     dates,
				Y:     temps,
				YAxis: "y2",
				Line:  &Line{Color: style.TemperatureColor},
			},
		},
		Layout: Layout{
			Title:  title(style.Title),
			XAxis:  Axis{Title: title(style.XTitle)},
			YAxis:  Axis{Title: title(style.RidesAxisTitle)},
			YAxis2: &Axis{Title: title(style.TempAxisTitle), Overlaying: "y", Side: "right"},
			Legend: &Legend{Title: title(style.LegendTitle)},
			Height: style.Height,
			Width:  style.Width,
		},
	}
	whiteTemplate(&fig.Layout)
	fig.Layout.YAxis2.ShowGrid = boolPtr(false)
	return fig
}

// SortRankings returns a copy of rows sorted ascending by ride count. Ties
// keep their input order.
func SortRankings(rows []types.StationRanking) []types.StationRanking {
	sorted := make([]types.StationRanking, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RideCount < sorted[j].RideCount
	})
	return sorted
}

// RankedBars draws one horizontal bar per station, smallest first so the
// busiest station ends up on top. Bar color darkens with ride count.
func RankedBars(rows []types.StationRanking, style BarStyle) *Figure {
	sorted := SortRankings(rows)

	names := make([]string, len(sorted))
	counts := make([]int, len(sorted))
	values := make([]float64, len(sorted))
	for i, r := range sorted {
		names[i] = r.StationName
		counts[i] = r.RideCount
		values[i] = float64(r.RideCount)
	}

	ramp := style.Ramp
	if len(ramp) == 0 {
		ramp = Blues
	}

	fig := &Figure{
		Data: []Trace{{
			Type:        "bar",
			Orientation: "h",
			X:           counts,
			Y:           names,
			Marker:      &Marker{Color: ramp.Scale(values)},
		}},
		Layout: Layout{
			Title:  title(style.Title),
			XAxis:  Axis{Title: title(style.XTitle)},
			YAxis:  Axis{Title: title(style.YTitle), Type: "category", AutoMargin: true},
			Height: style.Height,
		},
	}
	whiteTemplate(&fig.Layout)
	return fig
}

// BoxPlot draws one box per rider type, in first-appearance order. Durations
// pass through unchanged and outliers stay visible.
func BoxPlot(rows []types.TripDurationSample, style BoxStyle) *Figure {
	riderTypes := filter.Domain(rows, types.TripDurationSample.Category)

	groups := make(map[string][]float64, len(riderTypes))
	for _, r := range rows {
		groups[r.RiderType] = append(groups[r.RiderType], r.DurationMinutes)
	}

	traces := make([]Trace, 0, len(riderTypes))
	for _, rt := range riderTypes {
		t := Trace{
			Type:      "box",
			Name:      rt,
			Y:         groups[rt],
			BoxPoints: "outliers",
		}
		if c, ok := style.Colors[rt]; ok {
			t.Marker = &Marker{Color: c}
		}
		traces = append(traces, t)
	}

	fig := &Figure{
		Data: traces,
		Layout: Layout{
			Title:      title(style.Title),
			XAxis:      Axis{Title: title(style.XTitle)},
			YAxis:      Axis{Title: title(style.YTitle)},
			ShowLegend: boolPtr(false),
			Height:     style.Height,
		},
	}
	whiteTemplate(&fig.Layout)
	return fig
}
