package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openbistro/cafe-booking-backend/internal/action"
	actionHttp "github.com/openbistro/cafe-booking-backend/internal/action/http"
	"github.com/openbistro/cafe-booking-backend/internal/auth"
	"github.com/openbistro/cafe-booking-backend/internal/booking"
	bookingHttp "github.com/openbistro/cafe-booking-backend/internal/booking/http"
	"github.com/openbistro/cafe-booking-backend/internal/cafe"
	cafeHttp "github.com/openbistro/cafe-booking-backend/internal/cafe/http"
	"github.com/openbistro/cafe-booking-backend/internal/config"
	"github.com/openbistro/cafe-booking-backend/internal/dish"
	dishHttp "github.com/openbistro/cafe-booking-backend/internal/dish/http"
	"github.com/openbistro/cafe-booking-backend/internal/media"
	mediaHttp "github.com/openbistro/cafe-booking-backend/internal/media/http"
	"github.com/openbistro/cafe-booking-backend/internal/slot"
	slotHttp "github.com/openbistro/cafe-booking-backend/internal/slot/http"
	"github.com/openbistro/cafe-booking-backend/internal/table"
	tableHttp "github.com/openbistro/cafe-booking-backend/internal/table/http"
	"github.com/openbistro/cafe-booking-backend/internal/user"
	userHttp "github.com/openbistro/cafe-booking-backend/internal/user/http"
)

// NewRouter assembles middleware (CORS, logging, recovery, auth) and
// registers every module's routes under /v1.
func NewRouter(
	cfg *config.Config,
	userService user.Service,
	cafeService cafe.Service,
	tableService table.Service,
	slotService slot.Service,
	dishService dish.Service,
	actionService action.Service,
	mediaService media.Service,
	bookingService booking.Service,
	jwtManager *auth.JWTManager,
) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(jwtManager)
	staffMiddleware := RequireStaff(userService)
	adminMiddleware := RequireAdmin(userService)

	authHandler := NewAuthHandler(userService, jwtManager)
	userHandler := userHttp.NewHandler(userService)
	cafeHandler := cafeHttp.NewHandler(cafeService)
	tableHandler := tableHttp.NewHandler(tableService)
	slotHandler := slotHttp.NewHandler(slotService)
	dishHandler := dishHttp.NewHandler(dishService)
	actionHandler := actionHttp.NewHandler(actionService)
	mediaHandler := mediaHttp.NewHandler(mediaService)
	bookingHandler := bookingHttp.NewHandler(bookingService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		cafeHttp.RegisterRoutes(v1, cafeHandler, authMiddleware, staffMiddleware)
		tableHttp.RegisterRoutes(v1, tableHandler, authMiddleware, staffMiddleware)
		slotHttp.RegisterRoutes(v1, slotHandler, authMiddleware, staffMiddleware)
		dishHttp.RegisterRoutes(v1, dishHandler, authMiddleware, staffMiddleware)
		actionHttp.RegisterRoutes(v1, actionHandler, authMiddleware, staffMiddleware)
		mediaHttp.RegisterRoutes(v1, mediaHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, staffMiddleware, adminMiddleware)
	}

	return r
}
