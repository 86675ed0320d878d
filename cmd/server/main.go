// Package main is the entry point for the library-api service.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graphql-go/handler"

	"github.com/librarium/library-api/graph"
	"github.com/librarium/library-api/internal/auth"
	"github.com/librarium/library-api/internal/config"
	"github.com/librarium/library-api/internal/database"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Optional demo fixtures
	if cfg.SeedDemoData {
		if err := db.Seed(ctx); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	// Build the GraphQL schema
	schema, err := graph.NewSchema(db, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if err != nil {
		log.Fatalf("failed to build schema: %v", err)
	}

	// Create GraphQL server
	srv := handler.New(&handler.Config{
		Schema:     schema.Schema(),
		Pretty:     true,
		Playground: cfg.EnablePlayground,
	})

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.Handle("/graphql", auth.Middleware(db)(srv))
	mux.HandleFunc("/health", healthHandler)

	// Start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down server: %v", err)
		}
	}()

	log.Printf("Library API listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"0.1.0"}`))
}
