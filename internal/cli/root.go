// Package cli defines the cobra command tree for propdb.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propdb/internal/client"
	"github.com/evcraddock/propdb/internal/config"
	"github.com/evcraddock/propdb/internal/db"
	"github.com/evcraddock/propdb/internal/logging"
	"github.com/evcraddock/propdb/internal/schema"
)

var (
	flagFormat string
	flagDB     string
	flagDriver string
	flagServer string

	// settings is the effective configuration, loaded before each command.
	settings config.Config
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "propdb",
		Short:             "Store and browse property listings",
		Long:              "A tool to record property listings (address, price, size, description) in SQLite or Postgres, served over a JSON API and browsable from the CLI.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "database DSN or SQLite path (default: ~/.propdb/properties.db)")
	root.PersistentFlags().StringVar(&flagDriver, "driver", "", "database driver (sqlite3|pgx)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: "+config.DefaultServerURL+")")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newServeCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// loadSettings resolves configuration and sets up logging. Flags win over
// every other source.
func loadSettings(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid --format %q (want text or json)", flagFormat)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagDriver != "" {
		cfg.Database.Driver = flagDriver
	}
	if flagDB != "" {
		cfg.Database.DSN = flagDB
	}

	settings = cfg
	logging.Setup(cfg.DevMode)
	return nil
}

// openDB opens the configured database and returns it with its dialect.
// Used by the serve command to pass the DB to the web server.
func openDB(ctx context.Context) (*sql.DB, schema.Dialect, error) {
	dialect, err := db.DialectFor(settings.Database.Driver)
	if err != nil {
		return nil, nil, err
	}
	if settings.Database.DSN == "" {
		return nil, nil, fmt.Errorf("no database DSN configured for driver %s", settings.Database.Driver)
	}

	database, err := db.OpenDriver(ctx, settings.Database.Driver, settings.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	return database, dialect, nil
}

// newAPIClient creates an HTTP client for the propdb API.
func newAPIClient() *client.Client {
	return client.New(settings.ServerURL)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

