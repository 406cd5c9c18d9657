package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallbox_telemetry/internal/generation"
	"wallbox_telemetry/internal/handlers"
	"wallbox_telemetry/internal/logger"
	"wallbox_telemetry/internal/repository"
	"wallbox_telemetry/internal/repository/db"
	"wallbox_telemetry/internal/server"
	"wallbox_telemetry/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open store
	store, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// construct the generation collaborator once, at startup. A missing
	// credential is detected here and the agent degrades to diagnostic
	// replies instead of discovering the problem mid-call.
	gen := newGenerator(log)

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, gen, log)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, gen, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.BindEnv("gemini.api_key", "GEMINI_API_KEY"); err != nil {
		return err
	}
	return viper.ReadInConfig()
}

// openDB initializes the SQLite store using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "telemetry.db")
		dbPath = "telemetry.db"
	}
	return db.InitDB(dbPath)
}

// newGenerator builds the Gemini client, or returns nil when the
// credential is absent so the support service can report it.
func newGenerator(log *logger.Logger) generation.Generator {
	g, err := generation.NewGemini(
		context.Background(),
		viper.GetString("gemini.api_key"),
		viper.GetString("gemini.model"),
	)
	if err != nil {
		if errors.Is(err, generation.ErrMissingCredential) {
			log.Warnw("GEMINI_API_KEY not configured; support agent will answer with a diagnostic")
		} else {
			log.Errorw("failed to init gemini client; support agent degraded", "err", err)
		}
		return nil
	}
	return g
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful
// shutdown.
func waitForShutdown(srv *server.Server, gen generation.Generator, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}

	if closer, ok := gen.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Errorw("failed to close gemini client", "err", err)
		}
	}
}
