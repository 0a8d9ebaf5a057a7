package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Check if YAML file exists
	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	// Check if SQLite file already exists
	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	if *dryRun {
		fmt.Println("DRY RUN - No changes will be made")
	}

	// Load YAML configuration
	fmt.Printf("Loading YAML configuration...\n")
	yamlProvider := config.NewYAMLProvider(*yamlFile)
	configData, err := yamlProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML configuration: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		printConfigSummary(configData)
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	// Remove existing SQLite file if force is specified
	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	// Create the database and load the configuration into it
	fmt.Printf("Loading configuration into SQLite database...\n")
	if err := loadConfigIntoSQLite(*sqliteFile, configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration into SQLite: %v\n", err)
		os.Exit(1)
	}

	// Read it back and compare
	fmt.Printf("Verifying SQLite configuration...\n")
	if err := verify(*sqliteFile, configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying SQLite configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion completed successfully!\n")
	fmt.Printf("You can now use the SQLite backend with: -config-backend sqlite -config %s\n", *sqliteFile)
}

func loadConfigIntoSQLite(dbPath string, configData *config.ConfigData) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Opening the provider creates and migrates the schema
	sqliteProvider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite provider: %w", err)
	}
	defer sqliteProvider.Close()

	if err := sqliteProvider.SaveConfig(configData); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Printf("  Configuration successfully inserted into database\n")
	return nil
}

// verify reloads the configuration from dbPath and checks every section
// against want.
func verify(dbPath string, want *config.ConfigData) error {
	provider, err := config.NewSQLiteProvider(dbPath)
	if err != nil {
		return err
	}
	defer provider.Close()

	got, err := provider.LoadConfig()
	if err != nil {
		return err
	}

	sections := []struct {
		name      string
		got, want any
	}{
		{"dashboard", got.Dashboard, want.Dashboard},
		{"data", got.Data, want.Data},
		{"assets", got.Assets, want.Assets},
		{"server", got.Server, want.Server},
	}
	for _, s := range sections {
		if !reflect.DeepEqual(s.got, s.want) {
			return fmt.Errorf("%s section differs after conversion:\n  yaml:   %+v\n  sqlite: %+v", s.name, s.want, s.got)
		}
		fmt.Printf("  ✓ %s section matches\n", s.name)
	}
	return nil
}

func printConfigSummary(configData *config.ConfigData) {
	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("Dashboard: %q (year %d)\n", configData.Dashboard.PageTitle, configData.Dashboard.Year)

	fmt.Printf("\nData source: %s\n", configData.Data.Source)
	switch configData.Data.Source {
	case config.SourcePostgres:
		if pg := configData.Data.Postgres; pg != nil {
			fmt.Printf("  - tables: %s, %s, %s\n", pg.DailyTable, pg.StationsTable, pg.TripDurationTable)
		}
	default:
		fmt.Printf("  - daily: %s\n", configData.Data.DailyCSV)
		fmt.Printf("  - stations: %s\n", configData.Data.StationsCSV)
		if configData.Data.TripDurationCSV != "" {
			fmt.Printf("  - trip durations: %s\n", configData.Data.TripDurationCSV)
		}
	}

	fmt.Printf("\nAssets directory: %s\n", configData.Assets.Dir)
	fmt.Printf("Server: %s:%d\n", configData.Server.ListenAddr, configData.Server.Port)
}
