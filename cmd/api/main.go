package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/sapmockgo/internal/config"
	"github.com/xelth-com/sapmockgo/internal/handlers"
	"github.com/xelth-com/sapmockgo/internal/simulator"
	"github.com/xelth-com/sapmockgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Build the simulator with the default material seed
	sim := simulator.New(cfg)
	log.Println("✅ Simulator initialized (default material seed)")

	// 3. Start the event hub
	hub := websocket.NewHub()
	go hub.Run()
	sim.SetHub(hub)
	log.Println("✅ Event hub started")

	// 4. Set up HTTP router
	router := handlers.NewRouter(sim, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Mock SAP API listening on port %s (auth required: %v)\n", cfg.Port, cfg.RequireAuth)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-shutdown
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("✅ Server stopped")
}
