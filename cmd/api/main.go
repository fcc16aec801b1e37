package main

import (
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kofiasare/driverhire-backend/internal/config"
	"github.com/kofiasare/driverhire-backend/internal/database"
	"github.com/kofiasare/driverhire-backend/internal/handlers"
	"github.com/kofiasare/driverhire-backend/internal/logging"
	"github.com/kofiasare/driverhire-backend/internal/middleware"
	"github.com/kofiasare/driverhire-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	cache, err := services.NewCache(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer cache.Close()

	push, err := services.NewPush(cfg.FirebaseCredPath, logger)
	if err != nil {
		logger.Warn("firebase initialization failed, push disabled", "err", err)
		push, _ = services.NewPush("", logger)
	}

	storage, err := services.NewStorage(services.StorageConfig{
		AWSRegion:    cfg.AWSRegion,
		AWSAccessKey: cfg.AWSAccessKey,
		AWSSecretKey: cfg.AWSSecretKey,
		S3Bucket:     cfg.S3Bucket,
		BaseURL:      cfg.BaseURL,
		UploadDir:    cfg.UploadDir,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	payments := services.NewPayments(cfg.StripeAPIKey, cfg.StripeCurrency, logger)

	hub := services.NewHub(logger)
	go hub.Run()

	r := gin.Default()
	r.Use(middleware.Metrics())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Serve locally stored uploads when S3 is not configured
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "wsClients": hub.ConnectedClients()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/avatar", handlers.UploadAvatar(db, storage))
			}

			// Driver discovery and reviews
			drivers := protected.Group("/drivers")
			{
				drivers.GET("", handlers.ListDrivers(db, cache))
				drivers.GET("/:id", handlers.GetDriver(db))
				drivers.POST("/:id/reviews", handlers.AddReview(db))
				drivers.GET("/:id/reviews", handlers.ListReviews(db))
			}

			// Bookings (rider side)
			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, hub, payments))
				bookings.GET("", handlers.ListBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.POST("/:id/cancel", handlers.CancelBooking(db, hub, payments, cache))
			}

			// Payment methods
			paymentMethods := protected.Group("/payment-methods")
			{
				paymentMethods.GET("", handlers.ListPaymentMethods(db))
				paymentMethods.POST("", handlers.AddPaymentMethod(db))
				paymentMethods.PUT("/:id", handlers.UpdatePaymentMethod(db))
				paymentMethods.PUT("/:id/default", handlers.SetDefaultPaymentMethod(db))
				paymentMethods.DELETE("/:id", handlers.DeletePaymentMethod(db))
			}

			// Driver workflow (partner app)
			driver := protected.Group("/driver")
			{
				driver.POST("/availability", handlers.UpdateDriverAvailability(db, cache))
				driver.GET("/status", handlers.GetDriverStatus(db))
				driver.GET("/trips", handlers.GetDriverTrips(db))
				driver.POST("/trips/:id/accept", handlers.AcceptTrip(db, hub, cache, push))
				driver.POST("/trips/:id/start", handlers.StartTrip(db, hub, cache))
				driver.POST("/trips/:id/complete", handlers.CompleteTrip(db, hub, cache, push, payments))
				driver.POST("/trips/:id/cancel", handlers.CancelTrip(db, hub, cache, payments))
				driver.GET("/earnings", handlers.GetDriverEarnings(db))
				driver.GET("/trip-history", handlers.GetDriverTripHistory(db))
			}

			// Notification tokens
			notifications := protected.Group("/notifications")
			{
				notifications.POST("/register-token", handlers.RegisterFCMToken(db))
				notifications.DELETE("/remove-token", handlers.RemoveFCMToken(db))
			}
		}
	}

	logger.Info("starting api", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
