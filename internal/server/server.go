package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/config"
	"github.com/petkovm/ridehail/internal/handlers"
	"github.com/petkovm/ridehail/internal/middleware"
	"github.com/petkovm/ridehail/internal/models"
	"github.com/petkovm/ridehail/pkg/logger"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log, err := logger.New(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ObservabilityMiddleware(log))

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("server listening", zap.String("port", port))
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	r.GET("/", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/driver/:id/profile", handlers.GetDriverPublicProfile)
		public.GET("/drivers/rankings", handlers.GetDriverRankings)
		public.GET("/search/drivers", handlers.SearchAvailableDrivers)
	}

	protected := r.Group("/")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.PATCH("/:id/settings", handlers.UpdateUserSettings)
			user.PUT("/:id/security", handlers.UpdateUserSecurity)
			user.POST("/favorites/add", handlers.AddFavoriteDriver)
			user.GET("/:id/favorites", handlers.GetFavoriteDrivers)
			user.GET("/:id/history", handlers.GetClientTripHistory)
		}

		driver := protected.Group("/driver")
		{
			driver.POST("/setup", handlers.SetupDriver)
			driver.PUT("/:id/manage-service", handlers.ManageDriverService)
			driver.PATCH("/:id/shift", handlers.ToggleDriverShift)
			driver.GET("/:id/earnings", handlers.GetDriverEarnings)
			driver.PATCH("/:id/location", handlers.UpdateDriverLocation)
			driver.GET("/:id/trips/history", handlers.GetDriverTripHistory)
			driver.GET("/:id/reviews", handlers.GetDriverReviews)
		}

		trip := protected.Group("/trip")
		{
			trip.POST("/request", handlers.RequestTrip)
			trip.PATCH("/:id/accept", handlers.AcceptTrip)
			trip.PATCH("/:id/cancel", handlers.CancelTrip)
			trip.PATCH("/:id/complete", handlers.CompleteTrip)
			trip.GET("/:id/status", handlers.TrackTripStatus)
		}

		trips := protected.Group("/trips")
		{
			trips.GET("/available-trips", handlers.GetAvailableTrips)
			trips.GET("/shared/available", handlers.GetSharedTrips)
			trips.GET("/calculate-price", handlers.CalculateTripPrice)
		}

		protected.POST("/reviews/add", handlers.LeaveReview)

		messages := protected.Group("/messages")
		{
			messages.POST("/send", handlers.SendMessage)
			messages.GET("/inbox/:user_id", handlers.GetInbox)
			messages.GET("/chat/:user_one_id/:user_two_id", handlers.GetChatHistory)
		}
	}

	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard/stats", handlers.GetSystemStats)
		admin.GET("/unverified-drivers", handlers.GetUnverifiedDrivers)
		admin.PATCH("/verify-driver/:user_id", handlers.VerifyDriver)
		admin.PATCH("/users/:user_id/block", handlers.BlockUser)
		admin.GET("/reviews/all", handlers.GetAllReviews)
		admin.DELETE("/reviews/:review_id", handlers.DeleteReview)
		admin.POST("/promo-codes/create", handlers.CreatePromoCode)
		admin.GET("/promo-codes/active", handlers.GetActivePromoCodes)
		admin.DELETE("/promo-codes/:code", handlers.DeletePromoCode)
	}
}
