package main

import (
	"careerpath-backend/internal/api"
	"careerpath-backend/internal/careers"
	"careerpath-backend/internal/chatbot"
	"careerpath-backend/internal/config"
	"careerpath-backend/internal/database"
	"careerpath-backend/internal/handlers"
	"careerpath-backend/internal/integrations"
	"careerpath-backend/internal/services"
	"careerpath-backend/internal/telemetry"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	log.Println("Starting CareerPath Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	closeLog, err := telemetry.InitLogger(cfg.LogFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to set up log file: %v", err)
	}
	defer closeLog()
	log.Println("Configuration loaded successfully.")

	if cfg.MetricsEnabled {
		shutdownTelemetry, err := telemetry.InitTelemetry(context.Background(), cfg.TracesFile, cfg.MetricsFile)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialise telemetry: %v", err)
		}
		defer shutdownTelemetry()
		log.Printf("Telemetry exporting to %s and %s.", cfg.TracesFile, cfg.MetricsFile)
	}

	// 2. Open the consultation store. An empty DATABASE_URL leaves it nil.
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()
	consultationStore, err := database.Open(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to open consultation store: %v", err)
	}
	if consultationStore != nil {
		defer consultationStore.Close()
	}

	// 3. Initialize Dependencies (Catalog, Bot, Services, Handlers)
	catalog, err := careers.Load(cfg.CareersFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to load career catalog: %v", err)
	}
	log.Printf("Career catalog loaded with %d paths.", catalog.Len())

	classifier, err := chatbot.NewClassifier()
	if err != nil {
		log.Fatalf("FATAL: Failed to build response classifier: %v", err)
	}
	bot := chatbot.NewBot(classifier, chatbot.NewThinker(cfg.ChatThinkMin, cfg.ChatThinkMax))
	log.Println("Chatbot initialized.")

	consultationService := services.NewConsultationService(consultationStore)
	if registry := buildNotifiers(cfg); registry.Len() > 0 {
		testCtx, testCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := registry.TestAll(testCtx); err != nil {
			log.Printf("WARN: Notification connection test failed: %v", err)
		}
		testCancel()
		consultationService.SetNotifier(registry)
	}
	log.Println("ConsultationService initialized.")

	chatService := services.NewChatService(bot, cfg.ChatSessionTTL)
	chatService.SetMaxSessions(cfg.ChatMaxSessions)
	log.Println("ChatService initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		ConsultationHandler: handlers.NewConsultationHandler(consultationService),
		CareerHandler:       handlers.NewCareerHandler(catalog),
		ChatHandler:         handlers.NewChatHandlers(chatService),
		ChatWSHandler:       handlers.NewChatWSHandler(chatService, api.OriginChecker(cfg.AllowedOrigins)),
		Config:              cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go chatService.RunSweeper(sweepCtx, time.Minute)

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Chat sends block for the bot's thinking pause.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}

// buildNotifiers registers every booking destination that is fully configured.
func buildNotifiers(cfg *config.Config) *integrations.Registry {
	registry := integrations.NewRegistry()
	if cfg.SlackBotToken != "" || cfg.SlackChannelID != "" {
		if n, err := integrations.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannelID); err != nil {
			log.Printf("WARN: Slack notifications disabled: %v", err)
		} else {
			registry.Register(n)
		}
	}
	if cfg.NotionToken != "" || cfg.NotionDatabaseID != "" {
		if n, err := integrations.NewNotionNotifier(cfg.NotionToken, cfg.NotionDatabaseID); err != nil {
			log.Printf("WARN: Notion notifications disabled: %v", err)
		} else {
			registry.Register(n)
		}
	}
	return registry
}
