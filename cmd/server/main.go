package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "locagora-backend/internal/api/http"
	"locagora-backend/internal/config"
	"locagora-backend/internal/logger"
	"locagora-backend/internal/repository/postgres"
	"locagora-backend/internal/security"
	"locagora-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Locagora Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	calendarSvc := service.NewCalendarService(store.CalendarRepository)
	availabilitySvc := service.NewAvailabilityService(store.EquipmentRepository, store.UnitRepository, store.OrderRepository, calendarSvc)
	inventorySvc := service.NewInventoryService(store.EquipmentRepository, store.UnitRepository)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.EquipmentRepository,
		store.UnitRepository,
		store.UserRepository,
		availabilitySvc,
		calendarSvc,
		emailSvc,
		cfg.Rental.DeliveryFeeCents,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Calendar:     calendarSvc,
		Availability: availabilitySvc,
		Inventory:    inventorySvc,
		Order:        orderSvc,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
