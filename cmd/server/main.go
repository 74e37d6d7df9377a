package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/visionscan/backend/config"
	httpDelivery "github.com/visionscan/backend/internal/delivery/http"
	"github.com/visionscan/backend/internal/infrastructure/memstore"
	"github.com/visionscan/backend/internal/infrastructure/ollama"
	"github.com/visionscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting VisionScan POS Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Ollama: %s (model: %s, timeout: %s)", cfg.Ollama.Endpoint, cfg.Ollama.Model, cfg.Ollama.Timeout)

	// Initialize infrastructure dependencies
	inventoryStore := memstore.NewInventoryStore()
	sessionStore := memstore.NewSessionStore()

	ollamaClient := ollama.NewClient(cfg.Ollama.Endpoint, cfg.Ollama.Model, cfg.Ollama.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ollamaClient.SetDebug(true)
		log.Printf("Ollama client debug mode enabled")
	}

	// Probe the model server so a misconfigured endpoint shows up at startup
	// instead of on the first scan.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := ollamaClient.Heartbeat(ctx); err != nil {
		log.Printf("WARNING: Ollama not reachable at %s: %v (detections will fail until it is up)", cfg.Ollama.Endpoint, err)
	}
	cancel()

	// Initialize usecase layer
	detectionService := usecase.NewDetectionService(
		sessionStore,
		inventoryStore,
		ollamaClient,
		usecase.DetectionServiceConfig{
			FuzzyThreshold:     cfg.Matching.FuzzyThreshold,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: fuzzy_threshold=%.2f, debug=%v",
		cfg.Matching.FuzzyThreshold,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(detectionService, inventoryStore, sessionStore)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
