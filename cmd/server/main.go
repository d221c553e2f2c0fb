package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openbistro/cafe-booking-backend/internal/app"
	"github.com/openbistro/cafe-booking-backend/internal/config"
	"github.com/openbistro/cafe-booking-backend/internal/db"
	"github.com/openbistro/cafe-booking-backend/internal/taskqueue"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Task queue is optional: without a broker the API still works,
	// reminders and notifications are simply dropped.
	var queue taskqueue.Queue = taskqueue.NewNoopQueue()
	if cfg.AMQPURL != "" {
		amqpQueue, err := taskqueue.NewAMQPQueue(cfg.AMQPURL, cfg.TaskExchange)
		if err != nil {
			log.Fatalf("failed to connect to task queue: %v", err)
		}
		queue = amqpQueue
	}
	defer queue.Close()

	container, err := app.NewContainer(cfg, pool, queue)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
