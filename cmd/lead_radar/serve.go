package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/llm"
	"github.com/jonathan/lead-radar/internal/refresh"
	"github.com/jonathan/lead-radar/internal/server"
)

var (
	servePort      int
	serveNoRefresh bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes search, lead detail, enrichment, AI analysis and saved-lead endpoints.
The saved-lead routes and the nightly email refresh need DATABASE_URL; the analysis route needs an LLM API key.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT, default 8080)")
	serveCmd.Flags().BoolVar(&serveNoRefresh, "no-refresh", false, "Disable the scheduled email refresh")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	placesClient, err := newPlaces(cfg)
	if err != nil {
		return err
	}
	enricher := newEnricher(cfg)
	deps := server.Deps{Places: placesClient, Enricher: enricher}

	ctx := context.Background()
	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
		deps.Store = database

		if !serveNoRefresh {
			refresher := refresh.NewService(database, enricher, cfg.Refresh())
			if err := refresher.Start(); err != nil {
				return fmt.Errorf("failed to start refresh scheduler: %w", err)
			}
			defer refresher.Stop()
			log.Printf("[REFRESH] Next run at %s", refresher.NextRun().Format("2006-01-02 15:04"))
		}
	} else {
		log.Println("DATABASE_URL not set; saved-lead routes are disabled")
	}

	if cfg.LLMAPIKey != "" {
		llmCfg, err := cfg.LLM()
		if err != nil {
			return err
		}
		client, err := llm.NewClient(ctx, llmCfg, cfg.LLMAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		deps.LLM = client
	} else {
		log.Println("No LLM API key set; AI analysis is disabled")
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
	}, deps)

	return srv.Start()
}
