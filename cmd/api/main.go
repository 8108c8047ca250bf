package main

import (
	"log"
	"os"
	"time"

	"github.com/deshghuri/deshghuri-backend/internal/database"
	"github.com/deshghuri/deshghuri-backend/internal/handlers"
	"github.com/deshghuri/deshghuri-backend/internal/middleware"
	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// WebSocket hub carries notification pushes to connected users
	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Locally stored images
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		api.GET("/home", handlers.Home(db))
		api.GET("/destinations", handlers.GetDestinations(db))
		api.GET("/destinations/:id", handlers.GetDestination(db))
		api.GET("/packages", handlers.GetPackages(db))
		api.GET("/packages/:id", handlers.GetPackage(db))
		api.GET("/hotels", handlers.GetHotels(db))
		api.GET("/hotels/:id", handlers.GetHotel(db))
		api.GET("/guides", handlers.GetGuides(db))
		api.GET("/guides/:guideId", handlers.GetGuide(db))
		api.GET("/guides/:guideId/reviews", handlers.GetGuideReviews(db))
		api.POST("/contact", handlers.CreateContactMessage(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", handlers.GetNotifications(db))
				notifications.GET("/unread-count", handlers.GetUnreadCount(db))
				notifications.POST("/:id/read", handlers.MarkNotificationRead(db))
				notifications.POST("/read-all", handlers.MarkAllNotificationsRead(db))
			}

			// Tourist routes
			tourists := protected.Group("/tourists")
			tourists.Use(middleware.RequireRole(models.RoleTourist))
			{
				tourists.GET("/dashboard", handlers.TouristDashboard(db))
				tourists.GET("/requests", handlers.GetTouristTourRequests(db))
				tourists.GET("/tours", handlers.GetTouristTours(db))
				tourists.GET("/hotel-bookings", handlers.GetTouristHotelBookings(db))
				tourists.GET("/package-bookings", handlers.GetTouristPackageBookings(db))
			}

			protected.POST("/guides/:guideId/book",
				middleware.RequireRole(models.RoleTourist), handlers.BookGuide(db, hub))
			protected.POST("/guides/:guideId/reviews",
				middleware.RequireRole(models.RoleTourist), handlers.CreateGuideReview(db, hub))
			protected.PUT("/reviews/:id",
				middleware.RequireRole(models.RoleTourist), handlers.UpdateGuideReview(db))
			protected.DELETE("/reviews/:id",
				middleware.RequireRole(models.RoleTourist), handlers.DeleteGuideReview(db))

			// Guide routes
			guides := protected.Group("/guides")
			guides.Use(middleware.RequireRole(models.RoleGuide))
			{
				guides.GET("/dashboard", handlers.GuideDashboard(db))
				guides.PUT("/profile", handlers.UpdateGuideProfile(db))
				guides.GET("/requests", handlers.GetGuideTourRequests(db))
				guides.POST("/requests/:id/accept", handlers.AcceptTourRequest(db, hub))
				guides.POST("/requests/:id/reject", handlers.RejectTourRequest(db, hub))
				guides.GET("/tours", handlers.GetGuideTours(db))
				guides.POST("/tours/:id/complete", handlers.CompleteTour(db, hub))
			}

			// Hotel booking routes (tourist side)
			protected.POST("/hotels/:id/rooms/:roomTypeId/book",
				middleware.RequireRole(models.RoleTourist), handlers.BookRoom(db, hub))
			protected.POST("/hotels/bookings/:id/cancel",
				middleware.RequireRole(models.RoleTourist), handlers.CancelHotelBooking(db, hub))
			protected.POST("/hotels/:id/reviews",
				middleware.RequireRole(models.RoleTourist), handlers.CreateHotelReview(db, hub))
			protected.PUT("/hotels/reviews/:id",
				middleware.RequireRole(models.RoleTourist), handlers.UpdateHotelReview(db))
			protected.DELETE("/hotels/reviews/:id",
				middleware.RequireRole(models.RoleTourist), handlers.DeleteHotelReview(db))

			// Hotel manager routes
			manager := protected.Group("/manager")
			manager.Use(middleware.RequireRole(models.RoleHotelManager))
			{
				manager.GET("/dashboard", handlers.HotelManagerDashboard(db))
				manager.GET("/hotels", handlers.GetManagerHotels(db))
				manager.POST("/hotels", handlers.CreateHotel(db))
				manager.PUT("/hotels/:id", handlers.UpdateHotel(db))
				manager.DELETE("/hotels/:id", handlers.DeleteHotel(db))
				manager.POST("/hotels/:id/room-types", handlers.CreateRoomType(db))
				manager.PUT("/hotels/room-types/:roomTypeId", handlers.UpdateRoomType(db))
				manager.DELETE("/hotels/room-types/:roomTypeId", handlers.DeleteRoomType(db))
				manager.POST("/hotels/:id/images", handlers.UploadHotelImage(db))
				manager.DELETE("/hotels/images/:imageId", handlers.DeleteHotelImage(db))
				manager.GET("/hotels/:id/bookings", handlers.GetHotelBookings(db))
				manager.PATCH("/hotels/bookings/:id/status", handlers.UpdateHotelBookingStatus(db, hub))
			}

			// Package booking routes
			protected.POST("/packages/:id/book",
				middleware.RequireRole(models.RoleTourist), handlers.BookPackage(db))
			protected.POST("/packages/:id/reviews",
				middleware.RequireRole(models.RoleTourist), handlers.AddPackageReview(db))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
