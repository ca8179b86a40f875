package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/briefing"
	"github.com/jonathan/hiring-radar/internal/config"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort          int
	serveConfigPath    string
	serveWithScheduler bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the analysis pipeline, the watchlist, the insight log and digests.

A database (DATABASE_URL) enables the watchlist, insight and brief endpoints; REDIS_URL and KAFKA_BROKERS add the
report cache and event publishing. Setting JWT_SECRET requires a bearer token on every endpoint except /health.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().BoolVar(&serveWithScheduler, "with-scheduler", false, "Also run the refresh scheduler (needs a database)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	jwtCfg, err := config.OptionalJWTConfig()
	if err != nil {
		return err
	}
	if serveWithScheduler && cfg.DatabaseURL == "" {
		return fmt.Errorf("--with-scheduler needs DATABASE_URL")
	}

	ctx := context.Background()
	svc, err := openServices(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	srvCfg := server.Config{
		Port: servePort,
		Pipeline: pipeline.Options{
			Analyzer: analysis.New(cfg.Thresholds),
			Sinks:    svc.sinks(),
		},
		JWT: jwtCfg,
	}
	if svc.db != nil {
		srvCfg.Store = svc.db
	}

	client, err := newLLMClient(ctx, cfg.APIKey)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
		srvCfg.Summarizer = briefing.NewLLMSummarizer(client)
	}

	if serveWithScheduler {
		sched := newScheduler(cfg, svc, false)
		schedCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := sched.Start(schedCtx); err != nil {
			return err
		}
		defer sched.Stop()
		log.Printf("[scheduler] Running alongside the API, spec: %s", cfg.Schedule)
	}

	return server.New(srvCfg).Start()
}
