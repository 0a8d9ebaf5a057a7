package config

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"

	"github.com/chrissnell/citibike-dashboard/pkg/migrate"
)

const defaultConfigName = "default"

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

// migrateSchema brings the configuration schema up to the latest version.
func migrateSchema(db *sql.DB) error {
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	return migrate.NewMigrator(db, migrate.NewFSProvider(migrations, migrationTable)).MigrateUp()
}

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate configuration schema: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database. Sections
// with no row fall back to defaults.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	dashboard, err := s.GetDashboardConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard config: %w", err)
	}
	config.Dashboard = *dashboard

	data, err := s.GetDataConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load data config: %w", err)
	}
	config.Data = *data

	assets, err := s.GetAssetsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load assets config: %w", err)
	}
	config.Assets = *assets

	server, err := s.GetServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	config.Server = *server

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDashboardConfig returns the dashboard display settings as stored
func (s *SQLiteProvider) GetDashboardConfig() (*DashboardData, error) {
	query := `
		SELECT page_title, data_year, summary_median, summary_mean, summary_min, summary_max
		FROM dashboard_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = ?)
	`

	var d DashboardData
	err := s.db.QueryRow(query, defaultConfigName).Scan(
		&d.PageTitle, &d.Year,
		&d.TripDurationSummary.Median, &d.TripDurationSummary.Mean,
		&d.TripDurationSummary.Min, &d.TripDurationSummary.Max,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query dashboard config: %w", err)
	}
	return &d, nil
}

// GetDataConfig returns the input table settings as stored
func (s *SQLiteProvider) GetDataConfig() (*DataData, error) {
	query := `
		SELECT source, daily_csv, stations_csv, trip_duration_csv,
		       pg_connection_string, pg_daily_table, pg_stations_table, pg_trip_duration_table
		FROM data_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = ?)
	`

	var d DataData
	var pg PostgresData
	err := s.db.QueryRow(query, defaultConfigName).Scan(
		&d.Source, &d.DailyCSV, &d.StationsCSV, &d.TripDurationCSV,
		&pg.ConnectionString, &pg.DailyTable, &pg.StationsTable, &pg.TripDurationTable,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query data config: %w", err)
	}
	if pg.ConnectionString != "" {
		d.Postgres = &pg
	}
	return &d, nil
}

// GetAssetsConfig returns the static asset settings as stored
func (s *SQLiteProvider) GetAssetsConfig() (*AssetsData, error) {
	query := `
		SELECT dir, banner_image, stations_image, boxplot_image, recommendations_image, trip_map_html
		FROM asset_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = ?)
	`

	var a AssetsData
	err := s.db.QueryRow(query, defaultConfigName).Scan(
		&a.Dir, &a.BannerImage, &a.StationsImage, &a.BoxplotImage, &a.RecommendationsImage, &a.TripMapHTML,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query assets config: %w", err)
	}
	return &a, nil
}

// GetServerConfig returns the HTTP listener settings as stored
func (s *SQLiteProvider) GetServerConfig() (*ServerData, error) {
	query := `
		SELECT listen_addr, port, cert, key
		FROM server_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = ?)
	`

	var sd ServerData
	err := s.db.QueryRow(query, defaultConfigName).Scan(&sd.ListenAddr, &sd.Port, &sd.Cert, &sd.Key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query server config: %w", err)
	}
	return &sd, nil
}

// IsReadOnly returns false since SQLite supports writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	configID, err := s.getOrCreateConfigID(tx)
	if err != nil {
		return fmt.Errorf("failed to insert config: %w", err)
	}

	d := configData.Dashboard
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO dashboard_configs
			(config_id, page_title, data_year, summary_median, summary_mean, summary_min, summary_max)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		configID, d.PageTitle, d.Year,
		d.TripDurationSummary.Median, d.TripDurationSummary.Mean,
		d.TripDurationSummary.Min, d.TripDurationSummary.Max,
	); err != nil {
		return fmt.Errorf("failed to save dashboard config: %w", err)
	}

	data := configData.Data
	var pg PostgresData
	if data.Postgres != nil {
		pg = *data.Postgres
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO data_configs
			(config_id, source, daily_csv, stations_csv, trip_duration_csv,
			 pg_connection_string, pg_daily_table, pg_stations_table, pg_trip_duration_table)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		configID, data.Source, data.DailyCSV, data.StationsCSV, data.TripDurationCSV,
		pg.ConnectionString, pg.DailyTable, pg.StationsTable, pg.TripDurationTable,
	); err != nil {
		return fmt.Errorf("failed to save data config: %w", err)
	}

	a := configData.Assets
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO asset_configs
			(config_id, dir, banner_image, stations_image, boxplot_image, recommendations_image, trip_map_html)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		configID, a.Dir, a.BannerImage, a.StationsImage, a.BoxplotImage, a.RecommendationsImage, a.TripMapHTML,
	); err != nil {
		return fmt.Errorf("failed to save assets config: %w", err)
	}

	sd := configData.Server
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO server_configs (config_id, listen_addr, port, cert, key)
		VALUES (?, ?, ?, ?, ?)`,
		configID, sd.ListenAddr, sd.Port, sd.Cert, sd.Key,
	); err != nil {
		return fmt.Errorf("failed to save server config: %w", err)
	}

	if _, err := tx.Exec(`UPDATE configs SET updated_at = datetime('now') WHERE id = ?`, configID); err != nil {
		return fmt.Errorf("failed to touch config: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteProvider) getOrCreateConfigID(tx *sql.Tx) (int64, error) {
	if _, err := tx.Exec(`INSERT OR IGNORE INTO configs (name) VALUES (?)`, defaultConfigName); err != nil {
		return 0, err
	}

	var id int64
	if err := tx.QueryRow(`SELECT id FROM configs WHERE name = ?`, defaultConfigName).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
