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

	"laporrt/backend/internal/api/handler"
	"laporrt/backend/internal/app"
	"laporrt/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting LaporRT Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 1. Storage, sessions and services
	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise %s storage: %v", cfg.StorageMode, err)
	}
	defer a.Close()

	// 2. Gin and routing
	r := gin.Default()
	h := &handler.Handler{
		Auth:      a.Auth,
		Reports:   a.Reports,
		Documents: a.Documents,
		Finances:  a.Finances,
		Labels:    a.Labels,
		Unit:      a.Unit(),
		Ping:      a.Ping,
		Mode:      cfg.StorageMode,
	}
	h.RegisterRoutes(r)

	// 3. HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("INFO: Listening on %s (%s mode)", server.Addr, cfg.StorageMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("INFO: Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}
}
