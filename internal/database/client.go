// Package database reads the published aggregate tables from Postgres or
// TimescaleDB through gorm.
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// Tables names the three aggregate tables.
type Tables struct {
	Daily        string
	Stations     string
	TripDuration string
}

// Client holds a read-only handle on the aggregate tables
type Client struct {
	DB     *gorm.DB
	tables Tables
}

// NewClient connects to the database and returns a client for tables
func NewClient(connectionString string, tables Tables) (*Client, error) {
	db, err := CreateConnection(connectionString)
	if err != nil {
		return nil, err
	}
	return &Client{DB: db, tables: tables}, nil
}

// HasTripDurations reports whether a trip duration table is configured
func (c *Client) HasTripDurations() bool {
	return c.tables.TripDuration != ""
}

// DailyRecords returns every row of the daily rides table in date order
func (c *Client) DailyRecords(ctx context.Context) ([]types.DailyRecord, error) {
	var rows []types.DailyRecord
	err := c.DB.WithContext(ctx).
		Table(c.tables.Daily).
		Select("date, rides_count, average_temperature, season").
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.tables.Daily, err)
	}
	return rows, nil
}

// StationRankings returns the station ranking table as published
func (c *Client) StationRankings(ctx context.Context) ([]types.StationRanking, error) {
	var rows []types.StationRanking
	err := c.DB.WithContext(ctx).
		Table(c.tables.Stations).
		Select("station_name, ride_count").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.tables.Stations, err)
	}
	return rows, nil
}

// TripDurations returns every trip duration sample
func (c *Client) TripDurations(ctx context.Context) ([]types.TripDurationSample, error) {
	var rows []types.TripDurationSample
	err := c.DB.WithContext(ctx).
		Table(c.tables.TripDuration).
		Select("rider_type, duration_minutes").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.tables.TripDuration, err)
	}
	return rows, nil
}

// Close releases the underlying connection pool
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateConnection is a helper function to create a database connection with standard GORM configuration
func CreateConnection(connectionString string) (*gorm.DB, error) {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	log.Info("connecting to the aggregates database...")
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		log.Warn("warning: unable to create a database connection:", err)
		return nil, err
	}
	log.Info("database connection successful")

	return db, nil
}
