package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/streetpulse/cliparse"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/router"
)

func main() {
	var err error

	// .env is optional; real environment variables win
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	// Connect to the submission database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Create router
	mux, err := router.NewRouter(dbConn, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "camera", cfg.CameraMode)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
