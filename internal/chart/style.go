package chart

import "fmt"

// DualAxisStyle holds the titles and colors of the rides/temperature chart.
type DualAxisStyle struct {
	Title            string
	XTitle           string
	RidesName        string
	RidesColor       string
	TemperatureName  string
	TemperatureColor string
	RidesAxisTitle   string
	TempAxisTitle    string
	LegendTitle      string
	Height           int
	Width            int
}

// DefaultDualAxisStyle returns the rides/temperature styling for a data year.
func DefaultDualAxisStyle(year int) DualAxisStyle {
	return DualAxisStyle{
		Title:            fmt.Sprintf("Daily CitiBike Rides and Temperature in NYC (%d)", year),
		XTitle:           "Date",
		RidesName:        "Daily Bike Rides",
		RidesColor:       "blue",
		TemperatureName:  "Average Temperature (°F)",
		TemperatureColor: "orange",
		RidesAxisTitle:   "Daily Bike Rides",
		TempAxisTitle:    "Temperature (°F)",
		LegendTitle:      "Metrics",
		Height:           600,
		Width:            1000,
	}
}

// BarStyle holds the titles and color ramp of the station ranking chart.
type BarStyle struct {
	Title  string
	XTitle string
	YTitle string
	Height int
	Ramp   Ramp
}

// DefaultBarStyle returns the top-stations styling.
func DefaultBarStyle() BarStyle {
	return BarStyle{
		Title:  "Top 20 Stations",
		XTitle: "Ride Count",
		YTitle: "Station Name",
		Height: 600,
		Ramp:   Blues,
	}
}

// BoxStyle holds the titles and per-category colors of the duration box plot.
type BoxStyle struct {
	Title  string
	XTitle string
	YTitle string
	Height int
	Colors map[string]string
}

// DefaultBoxStyle returns the trip-duration styling.
func DefaultBoxStyle() BoxStyle {
	return BoxStyle{
		Title:  "Trip Duration by Rider Type (1–65 Minutes)",
		XTitle: "Rider Type",
		YTitle: "Trip Duration (minutes)",
		Height: 600,
		Colors: map[string]string{
			"member": "#1f77b4",
			"casual": "#ff7f0e",
		},
	}
}
