package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/fit-scorer/internal/db"
	"github.com/jonathan/fit-scorer/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the scoring engine over REST. When a database
URL is configured (database_url or DATABASE_URL), assessments submitted with ids are
stored and can be listed per job.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, PORT, or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Left as a nil interface when no database is configured.
	var store server.Store
	if cfg.DatabaseURL != "" {
		database, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		store = database
	} else {
		log.Info("no database configured, assessments will not be stored")
	}

	srv := server.New(server.Config{
		Port:    port,
		Workers: cfg.Workers,
	}, engine, store, log)

	return srv.Run(ctx)
}

func connectStore(ctx context.Context) (*db.DB, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("connected to database", zap.Bool("migrated", true))
	return database, nil
}
