package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nimblecal/meeting-booking-backend/internal/api"
	"github.com/nimblecal/meeting-booking-backend/internal/auth"
	"github.com/nimblecal/meeting-booking-backend/internal/availability"
	"github.com/nimblecal/meeting-booking-backend/internal/booking"
	"github.com/nimblecal/meeting-booking-backend/internal/calendar"
	"github.com/nimblecal/meeting-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	GoogleOAuth         calendar.OAuthConfig
	TargetCalendarEmail string
	CalendarTimeZone    string
	CalendarTimeout     time.Duration
	CalendarMaxResults  int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Availability Module
	availStore := availability.NewPgxStore(cfg.DBPool)
	availService := availability.NewService(availStore)

	// Calendar collaborator (per-user Google clients)
	clientFactory := calendar.NewGoogleClientFactory(cfg.GoogleOAuth, calendar.Options{
		MaxResults: int64(cfg.CalendarMaxResults),
		Timeout:    cfg.CalendarTimeout,
	})

	// Booking Module
	bookingService := booking.NewService(userService, availStore, clientFactory, booking.Config{
		TargetEmail: cfg.TargetCalendarEmail,
		TimeZone:    cfg.CalendarTimeZone,
	})

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		AvailService:   availService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
