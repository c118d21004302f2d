package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/lead-radar/internal/config"
	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/enrichment"
	"github.com/jonathan/lead-radar/internal/fetch"
	"github.com/jonathan/lead-radar/internal/pagespeed"
	"github.com/jonathan/lead-radar/internal/places"
)

// loadConfig reads --config and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Verbose = cfg.Verbose || verbose
	return cfg, nil
}

// newEnricher wires the PageSpeed client, HTTP fetcher and optional headless
// renderer into the enrichment orchestrator.
func newEnricher(cfg *config.Config) *enrichment.Enricher {
	ecfg := cfg.Enrichment()
	auditor := pagespeed.New(pagespeed.Config{
		APIKey:  cfg.PageSpeedAPIKey,
		Timeout: ecfg.SpeedTimeout,
	})

	var opts []enrichment.Option
	if cfg.UseBrowser {
		opts = append(opts, enrichment.WithRenderer(fetch.NewBrowserRenderer(cfg.Verbose)))
	}
	return enrichment.New(ecfg, auditor, opts...)
}

// newPlaces returns a Places client, failing when no key is configured.
func newPlaces(cfg *config.Config) (*places.Client, error) {
	if cfg.PlacesAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY is required")
	}
	return places.New(places.Config{APIKey: cfg.PlacesAPIKey}), nil
}

// openDB connects and migrates. It returns nil when no database is configured.
func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if cfg.Verbose {
		if v, err := database.MigrationVersion(ctx); err == nil {
			log.Printf("Database schema at version %d", v)
		}
	}
	return database, nil
}
