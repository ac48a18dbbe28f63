package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"brandpulse/internal/analysis"
	"brandpulse/internal/config"
	"brandpulse/internal/db"
	"brandpulse/internal/email"
	"brandpulse/internal/jobs"
	"brandpulse/internal/metrics"
	"brandpulse/internal/pipeline"
	"brandpulse/internal/search/perplexity"
	"brandpulse/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	metrics.Init(database)

	// Search collaborator
	if !cfg.SearchEnabled() {
		log.Println("Warning: PERPLEXITY_API_KEY not set, analyses will find no sources")
	}
	searcher := perplexity.NewClient(cfg.PerplexityAPIKey, cfg.PerplexityBaseURL, cfg.PerplexityModel, cfg.SearchRPM)

	// Analysis pipeline
	extractor := analysis.NewExtractor(yamlCfg.DomainWeights(), yamlCfg.BaseTrust())
	runner := pipeline.NewRunner(searcher, extractor, database, pipeline.Options{
		MaxSources:     cfg.MaxSources,
		Workers:        cfg.ExtractWorkers,
		SourceTimeout:  cfg.SourceFetchTimeout,
		PersistTimeout: cfg.PersistTimeout,
	})

	// Notifications
	notifier := email.NewNotifier(cfg)
	if cfg.DigestEnabled {
		digest := jobs.NewDigest(database, notifier, cfg.DigestInterval)
		go digest.Start(ctx)
	}

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(database, runner, notifier)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
