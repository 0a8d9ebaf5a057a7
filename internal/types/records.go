package types

import "time"

// DailyRecord is one day of system-wide ridership joined with the day's
// average temperature.
type DailyRecord struct {
	Date               time.Time `json:"date" gorm:"column:date"`
	RidesCount         int       `json:"rides_count" gorm:"column:rides_count"`
	AverageTemperature float64   `json:"average_temperature" gorm:"column:average_temperature"`
	Season             string    `json:"season" gorm:"column:season"`
}

// StationRanking is one row of the top-stations table.
type StationRanking struct {
	StationName string `json:"station_name" gorm:"column:station_name"`
	RideCount   int    `json:"ride_count" gorm:"column:ride_count"`
}

// TripDurationSample is a single trip's duration, tagged with the rider type
// ("member" or "casual").
type TripDurationSample struct {
	RiderType       string  `json:"rider_type" gorm:"column:rider_type"`
	DurationMinutes float64 `json:"duration_minutes" gorm:"column:duration_minutes"`
}

// TripDurationSummary is the display summary shown next to the box plot.
type TripDurationSummary struct {
	Median float64 `json:"median" yaml:"median"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Category returns the row's season. Used as the category accessor for filtering.
func (r DailyRecord) Category() string { return r.Season }

// Category returns the rider type. Used as the category accessor for grouping.
func (s TripDurationSample) Category() string { return s.RiderType }
