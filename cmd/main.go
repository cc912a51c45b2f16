package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wireframe_ai_server/config"
	"wireframe_ai_server/internal/ai"
	"wireframe_ai_server/internal/api"
	"wireframe_ai_server/internal/export"
	"wireframe_ai_server/internal/recents"
	"wireframe_ai_server/internal/session"
	"wireframe_ai_server/internal/storage"
)

func main() {
	// --- Load .env file ---
	// Must run before viper reads the environment.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---
	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Cannot open database %s: %v", cfg.DatabasePath, err)
	}
	log.Printf("SQLite database ready at %s", cfg.DatabasePath)

	wireframeStore := storage.NewWireframeStore(db)
	draftStore := storage.NewDraftStore(db)

	// Interfaces stay nil without a key so the session service reports generation as unavailable.
	var pageGen session.PageGenerator
	var wireframeGen session.WireframeGenerator
	if cfg.OpenAIKey != "" {
		generator := ai.NewGenerator(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		pageGen, wireframeGen = generator, generator
	}

	sessions := session.NewService(pageGen, wireframeGen, draftStore, cfg.GenerationTimeout)
	recentList := recents.New(cfg.RecentsLimit)
	exporter := export.NewExporter(cfg.ExportDir)

	apiHandler := api.NewAPIHandler(
		sessions,
		wireframeStore,
		draftStore,
		exporter,
		recentList,
		recentList.OnWireframeSaved,
	)

	// --- Start Services ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		runJanitor(ctx, sessions, cfg.SessionTTL)
	}()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler)

	// No WriteTimeout: add-pages makes one AI call per new page, each bounded by GENERATION_TIMEOUT.
	server := &http.Server{
		Addr:        cfg.ServerAddress,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	log.Println("Cancelling running generations...")
	sessions.Close(shutdownCtx)

	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	cancel()
	<-janitorDone

	if err := db.Close(); err != nil {
		log.Printf("WARN: closing database: %v", err)
	}

	log.Println("Application exiting.")
}

// runJanitor evicts idle sessions until ctx is done.
func runJanitor(ctx context.Context, sessions *session.Service, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.EvictIdle(ttl)
		}
	}
}
