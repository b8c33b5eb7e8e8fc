// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelingo/ReelLingo/internal/api"
	"github.com/reelingo/ReelLingo/internal/app"
	"github.com/reelingo/ReelLingo/internal/di"
)

func main() {
	log.Println("Starting ReelLingo server...")

	application := app.GetApp()
	if err := application.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	log.Printf("Configuration loaded, port %s", application.Config.Port)

	if err := app.InitServices(); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	log.Println("Services initialized")

	if err := performHealthCheck(); err != nil {
		log.Fatalf("Service health check failed: %v", err)
	}

	router, err := api.SetupRouter()
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}
	log.Println("Routes configured")

	port := application.Config.Port
	log.Printf("Server listening on http://localhost:%s", port)

	go func() {
		if err := application.Run(router, port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		log.Fatalf("Forced server shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// performHealthCheck verifies that the critical services made it into the
// container before routes are attached to them.
func performHealthCheck() error {
	container := di.GetContainer()

	criticalServices := []string{"llm", "reel", "script", "export", "config"}

	for _, serviceName := range criticalServices {
		if service := container.Get(serviceName); service == nil {
			return fmt.Errorf("critical service not registered: %s", serviceName)
		}
	}

	return nil
}
