package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akumar-dev/tweetpulse-be/internal/api"
	"github.com/akumar-dev/tweetpulse-be/internal/auth"
	"github.com/akumar-dev/tweetpulse-be/internal/config"
	"github.com/akumar-dev/tweetpulse-be/internal/database"
	"github.com/akumar-dev/tweetpulse-be/internal/docstore"
	"github.com/akumar-dev/tweetpulse-be/internal/logger"
	"github.com/akumar-dev/tweetpulse-be/internal/monitoring"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
	"github.com/akumar-dev/tweetpulse-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Set up the credential/event database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the batch document store
	store, err := docstore.NewStore(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer store.Close()

	// Set up the upstream analysis client
	upstreamClient := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(db)
	eventService := services.NewEventService(db, hub)
	analysisService := services.NewAnalysisService(upstreamClient, cfg.BatchPolicy)
	batchService := services.NewBatchService(store)

	// Set up and run the background upstream prober
	prober, err := monitoring.NewProber(upstreamClient, eventService, cfg.ProbeSchedule)
	if err != nil {
		log.Fatalf("Invalid probe schedule: %v", err)
	}
	go prober.Run()

	// Set up router
	router := api.NewRouter(tokens, hub, authService, analysisService, batchService, eventService, prober)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	prober.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
