package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbistro/cafe-booking-backend/internal/action"
	"github.com/openbistro/cafe-booking-backend/internal/api"
	"github.com/openbistro/cafe-booking-backend/internal/auth"
	"github.com/openbistro/cafe-booking-backend/internal/booking"
	"github.com/openbistro/cafe-booking-backend/internal/cafe"
	"github.com/openbistro/cafe-booking-backend/internal/config"
	"github.com/openbistro/cafe-booking-backend/internal/dish"
	"github.com/openbistro/cafe-booking-backend/internal/media"
	"github.com/openbistro/cafe-booking-backend/internal/notify"
	"github.com/openbistro/cafe-booking-backend/internal/pkg/storage"
	"github.com/openbistro/cafe-booking-backend/internal/slot"
	"github.com/openbistro/cafe-booking-backend/internal/table"
	"github.com/openbistro/cafe-booking-backend/internal/taskqueue"
	"github.com/openbistro/cafe-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, queue taskqueue.Queue) (*Container, error) {
	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	scheduler := notify.NewScheduler(queue, cfg.ReminderLead, cfg.BookingTimezone)

	mediaStore, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Cafe module
	cafeRepo := cafe.NewPgxRepository(pool)
	cafeService := cafe.NewService(cafeRepo, scheduler)

	// Table module
	tableRepo := table.NewPgxRepository(pool)
	tableService := table.NewService(tableRepo, cafeService, scheduler)

	// Slot module
	slotRepo := slot.NewPgxRepository(pool)
	slotService := slot.NewService(slotRepo, cafeService, scheduler)

	// Dish module
	dishRepo := dish.NewPgxRepository(pool)
	dishService := dish.NewService(dishRepo, cafeService)

	// Action module
	actionRepo := action.NewPgxRepository(pool)
	actionService := action.NewService(actionRepo, cafeService)

	// Media module
	mediaRepo := media.NewPgxRepository(pool)
	mediaService := media.NewService(mediaRepo, mediaStore)

	// Booking module
	bookingRepo := booking.NewPgxRepository(pool, cfg.BookingTimezone)
	bookingService := booking.NewService(
		bookingRepo,
		cafeService,
		tableService,
		slotService,
		scheduler,
		booking.Policy{
			MinLead:    cfg.BookingMinLead,
			MaxAdvance: cfg.BookingMaxAdvance,
		},
		cfg.BookingTimezone,
	)

	router := api.NewRouter(
		cfg,
		userService,
		cafeService,
		tableService,
		slotService,
		dishService,
		actionService,
		mediaService,
		bookingService,
		jwtManager,
	)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
