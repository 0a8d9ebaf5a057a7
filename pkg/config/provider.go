package config

import (
	"fmt"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetDashboardConfig() (*DashboardData, error)
	GetDataConfig() (*DataData, error)
	GetAssetsConfig() (*AssetsData, error)
	GetServerConfig() (*ServerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Dashboard DashboardData `json:"dashboard" yaml:"dashboard"`
	Data      DataData      `json:"data" yaml:"data"`
	Assets    AssetsData    `json:"assets" yaml:"assets"`
	Server    ServerData    `json:"server" yaml:"server"`
}

// DashboardData holds page-wide display settings
type DashboardData struct {
	PageTitle string `json:"page_title,omitempty" yaml:"page_title,omitempty"`
	// Year the published aggregates cover; shown in chart titles.
	Year                int         `json:"year,omitempty" yaml:"year,omitempty"`
	TripDurationSummary SummaryData `json:"trip_duration_summary,omitempty" yaml:"trip_duration_summary,omitempty"`
}

// SummaryData is the pre-computed trip duration summary shown as display text
// when no duration samples are configured.
type SummaryData struct {
	Median float64 `json:"median" yaml:"median"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// DataData says where the input tables are read from
type DataData struct {
	Source          string        `json:"source,omitempty" yaml:"source,omitempty"` // "csv" or "postgres"
	DailyCSV        string        `json:"daily_csv,omitempty" yaml:"daily_csv,omitempty"`
	StationsCSV     string        `json:"stations_csv,omitempty" yaml:"stations_csv,omitempty"`
	TripDurationCSV string        `json:"trip_duration_csv,omitempty" yaml:"trip_duration_csv,omitempty"`
	Postgres        *PostgresData `json:"postgres,omitempty" yaml:"postgres,omitempty"`
}

// PostgresData holds the read-only database source settings
type PostgresData struct {
	ConnectionString  string `json:"connection_string" yaml:"connection_string"`
	DailyTable        string `json:"daily_table,omitempty" yaml:"daily_table,omitempty"`
	StationsTable     string `json:"stations_table,omitempty" yaml:"stations_table,omitempty"`
	TripDurationTable string `json:"trip_duration_table,omitempty" yaml:"trip_duration_table,omitempty"`
}

// AssetsData locates the static artifacts produced by the analysis pipeline.
// Paths are relative to Dir.
type AssetsData struct {
	Dir                  string `json:"dir,omitempty" yaml:"dir,omitempty"`
	BannerImage          string `json:"banner_image,omitempty" yaml:"banner_image,omitempty"`
	StationsImage        string `json:"stations_image,omitempty" yaml:"stations_image,omitempty"`
	BoxplotImage         string `json:"boxplot_image,omitempty" yaml:"boxplot_image,omitempty"`
	RecommendationsImage string `json:"recommendations_image,omitempty" yaml:"recommendations_image,omitempty"`
	TripMapHTML          string `json:"trip_map_html,omitempty" yaml:"trip_map_html,omitempty"`
}

// ServerData holds the HTTP listener settings
type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
	Cert       string `json:"cert,omitempty" yaml:"cert,omitempty"`
	Key        string `json:"key,omitempty" yaml:"key,omitempty"`
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// ApplyDefaults fills every unset field with the values the published
// pipeline output uses.
func (c *ConfigData) ApplyDefaults() {
	d := &c.Dashboard
	if d.PageTitle == "" {
		d.PageTitle = "CitiBike Strategy Dashboard"
	}
	if d.Year == 0 {
		d.Year = 2022
	}
	if d.TripDurationSummary == (SummaryData{}) {
		d.TripDurationSummary = SummaryData{Median: 10.0, Mean: 13.3, Min: 1.0, Max: 65.4}
	}

	data := &c.Data
	if data.Source == "" {
		data.Source = SourceCSV
	}
	if data.DailyCSV == "" {
		data.DailyCSV = "02_Data/Prepared_Data/daily_sub_df.csv"
	}
	if data.StationsCSV == "" {
		data.StationsCSV = "02_Data/Prepared_Data/top_stations_df.csv"
	}
	if pg := data.Postgres; pg != nil {
		if pg.DailyTable == "" {
			pg.DailyTable = "daily_rides"
		}
		if pg.StationsTable == "" {
			pg.StationsTable = "top_stations"
		}
	}

	a := &c.Assets
	if a.Dir == "" {
		a.Dir = "."
	}
	if a.BannerImage == "" {
		a.BannerImage = "04_Analysis/Visualizations/green_light_bike.jpg"
	}
	if a.StationsImage == "" {
		a.StationsImage = "04_Analysis/Visualizations/top station.jpg"
	}
	if a.BoxplotImage == "" {
		a.BoxplotImage = "04_Analysis/Visualizations/tripduration_boxplot_static.png"
	}
	if a.RecommendationsImage == "" {
		a.RecommendationsImage = "04_Analysis/Visualizations/recommendations.jpg"
	}
	if a.TripMapHTML == "" {
		a.TripMapHTML = "02_Data/Prepared_Data/kepler.gl.html"
	}

	s := &c.Server
	if s.ListenAddr == "" {
		s.ListenAddr = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
}

// Validate reports configuration that can never serve a page.
func (c *ConfigData) Validate() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.DailyCSV == "" || c.Data.StationsCSV == "" {
			return fmt.Errorf("data.daily_csv and data.stations_csv are required for the csv source")
		}
	case SourcePostgres:
		if c.Data.Postgres == nil || c.Data.Postgres.ConnectionString == "" {
			return fmt.Errorf("data.postgres.connection_string is required for the postgres source")
		}
	default:
		return fmt.Errorf("unsupported data source %q; use %q or %q", c.Data.Source, SourceCSV, SourcePostgres)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if (c.Server.Cert == "") != (c.Server.Key == "") {
		return fmt.Errorf("server.cert and server.key must be set together")
	}
	return nil
}
