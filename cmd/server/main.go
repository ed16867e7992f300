package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/activities"
	"github.com/cx-tal-miterani/lodging-booking/internal/config"
	"github.com/cx-tal-miterani/lodging-booking/internal/handlers"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"github.com/cx-tal-miterani/lodging-booking/internal/router"
	"github.com/cx-tal-miterani/lodging-booking/internal/service"
	"github.com/cx-tal-miterani/lodging-booking/internal/websocket"
	"github.com/cx-tal-miterani/lodging-booking/internal/workflows"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store := reservation.NewStore()
	clock := reservation.RealClock{}

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	var bookingService service.BookingService
	switch cfg.Engine {
	case config.EngineTemporal:
		temporalClient, w := startWorker(cfg, store, clock)
		defer temporalClient.Close()
		defer w.Stop()
		bookingService = service.NewWorkflowBookingService(temporalClient, cfg.TaskQueue, store, hub)
	default:
		bookingService = service.NewBookingService(store, clock, hub)
	}

	h := handlers.NewHandler(bookingService, handlers.WithBookingTimeout(cfg.BookingTimeout))
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("API Server starting on port %s (engine=%s)", cfg.Port, cfg.Engine)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// startWorker connects to Temporal and hosts the booking worker in this
// process, so activities commit into the same store the API reads.
func startWorker(cfg *config.Config, store *reservation.Store, clock reservation.Clock) (client.Client, worker.Worker) {
	log.Printf("Connecting to Temporal at %s...", cfg.TemporalHost)
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Temporal: %v", err)
	}

	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	w.RegisterWorkflowWithOptions(workflows.BookingWorkflow, workflow.RegisterOptions{Name: workflows.BookingWorkflowName})

	acts := activities.NewActivities(store, clock)
	w.RegisterActivityWithOptions(acts.ReserveStay, activity.RegisterOptions{Name: activities.ReserveStayName})
	w.RegisterActivityWithOptions(acts.SendConfirmation, activity.RegisterOptions{Name: activities.SendConfirmationName})

	if err := w.Start(); err != nil {
		c.Close()
		log.Fatalf("Failed to start Temporal worker: %v", err)
	}
	log.Printf("Temporal worker listening on task queue %s", cfg.TaskQueue)

	return c, w
}
