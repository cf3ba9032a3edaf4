package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"danstore_server/api"
	"danstore_server/config"
	"danstore_server/database"
	"danstore_server/payments"
	"danstore_server/services"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger and database
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}

	if err := database.Migrate(database.GetInstance()); err != nil {
		logger.Fatal("Failed to migrate database", gecho.Field("error", err))
	}
}

func main() {
	// Setup graceful shutdown BEFORE starting the server
	setupGracefulShutdown(logger)

	db := database.GetInstance()
	preferences := payments.NewClient(cfg.Checkout, logger)

	sm, err := services.NewServiceManager(logger, cfg, db, preferences)
	if err != nil {
		logger.Fatal("Failed to initialize services", gecho.Field("error", err))
	}

	ctx := context.Background()
	if err := sm.StorageService.EnsureBucket(ctx); err != nil {
		logger.Warn("Failed to ensure image bucket", gecho.Field("error", err))
	}
	if err := sm.AuthService.EnsureAdminUser(ctx); err != nil {
		logger.Warn("Failed to seed admin user", gecho.Field("error", err))
	}

	r := api.App(sm)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Error("Failed to start server", gecho.Field("error", err))
	}
}

// setupGracefulShutdown sets up signal handling for graceful application shutdown
func setupGracefulShutdown(logger *gecho.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig))
		if err := database.CloseInstance(); err != nil {
			logger.Warn("Failed to close database", gecho.Field("error", err))
		}
		os.Exit(0)
	}()
}
