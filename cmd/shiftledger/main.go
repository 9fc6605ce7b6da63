package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shiftledger/shiftledger/internal/audit"
	"github.com/shiftledger/shiftledger/internal/config"
	"github.com/shiftledger/shiftledger/internal/database"
	"github.com/shiftledger/shiftledger/internal/handlers"
	"github.com/shiftledger/shiftledger/internal/middleware"
	"github.com/shiftledger/shiftledger/internal/notify"
	"github.com/shiftledger/shiftledger/internal/services"
	"gorm.io/gorm/logger"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShiftLedger...")

	// Initialize database connection
	if err := database.Connect(cfg.DatabaseURL, logger.Warn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Database connection established")

	// Run database migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Seed the shift dictionary
	if err := database.InitializeDefaults(cfg.DictionarySeedPath); err != nil {
		log.Fatalf("Failed to initialize database defaults: %v", err)
	}

	db := database.GetDB()

	// Initialize services
	normalizerService, err := services.NewNormalizerService(db)
	if err != nil {
		log.Fatalf("Failed to load shift dictionary: %v", err)
	}
	log.Printf("Shift dictionary loaded")

	agentService := services.NewAgentService(db)
	rosterService := services.NewRosterService(db, normalizerService)
	signalService := services.NewSignalService(db)
	attendanceService := services.NewAttendanceService(db, signalService)
	reportService := services.NewReportService(db)

	// Swap notifications go to Slack when a bot token is configured
	var swapNotifier services.SwapNotifier
	if cfg.SlackBotToken != "" {
		swapNotifier = notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackSwapsChannel)
		log.Printf("Slack swap notifications enabled for channel %s", cfg.SlackSwapsChannel)
	} else {
		log.Printf("Slack swap notifications disabled (SLACK_BOT_TOKEN not set)")
	}

	swapService := services.NewSwapService(db, agentService, audit.NewLogRecorder(), swapNotifier)

	// Initialize HTTP handlers
	httpHandler := handlers.NewHTTPHandler()
	apiHandler := handlers.NewAPIHandler(
		agentService,
		rosterService,
		signalService,
		attendanceService,
		swapService,
		reportService,
		normalizerService,
	)

	// Set up HTTP server routes
	mux := http.NewServeMux()
	httpHandler.SetupRoutes(mux)
	apiHandler.SetupRoutes(mux)

	// Wrap all routes with CORS and request-ID middleware
	corsMiddleware := middleware.NewCORSMiddleware() // Allow all origins
	handler := corsMiddleware.Wrap(middleware.RequestIDMiddleware(mux))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)
	log.Printf("API base URL: http://localhost:%d/api", cfg.HTTPPort)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, cleaning up...")

	if err := httpServer.Close(); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Shutdown complete")
}
