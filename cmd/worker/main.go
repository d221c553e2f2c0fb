package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/openbistro/cafe-booking-backend/internal/booking"
	"github.com/openbistro/cafe-booking-backend/internal/config"
	"github.com/openbistro/cafe-booking-backend/internal/db"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
	"github.com/openbistro/cafe-booking-backend/internal/taskqueue"
	"github.com/openbistro/cafe-booking-backend/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	consumer, err := taskqueue.NewConsumer(cfg.AMQPURL, cfg.TaskExchange, 0)
	if err != nil {
		log.Fatalf("failed to connect to task queue: %v", err)
	}
	defer consumer.Close()

	bookingRepo := booking.NewPgxRepository(pool, cfg.BookingTimezone)
	w := worker.New(consumer, bookingRepo, notify.NewConsoleNotifier())

	// Periodic sweep finishes confirmed bookings whose slot has ended.
	go w.RunSweeper(ctx, cfg.BookingSweepPeriod)

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("worker error: %v", err)
	}

	log.Println("worker exited gracefully")
}
