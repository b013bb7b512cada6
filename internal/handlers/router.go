package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/middleware"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/services"
	"github.com/gowheels/gowheels-backend/internal/store"
)

// Deps is everything the HTTP surface talks to.
type Deps struct {
	Store      store.Store
	JWTSecret  string
	Auth       *services.AuthService
	Bookings   *services.BookingService
	Drivers    *services.DriverService
	Passengers *services.PassengerService
	Trips      *services.TripService
	Payments   *services.PaymentService
	Stats      *services.StatsService
	Console    *services.QueryConsole
	Hub        *services.Hub
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	{
		api.GET("/test", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "GoWheels API is running"})
		})
		api.GET("/health", Health(d.Store))

		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", Signup(d.Auth))
			auth.POST("/login", Login(d.Auth))
		}

		// WebSocket connection
		if d.Hub != nil {
			api.GET("/ws", middleware.AuthMiddleware(d.JWTSecret), WebSocketHandler(d.Hub))
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(d.JWTSecret))
		{
			passengers := protected.Group("/passengers")
			{
				passengers.GET("", ListPassengers(d.Passengers))
				passengers.GET("/:id", GetPassenger(d.Passengers))
				passengers.PUT("/:id",
					middleware.RequireCategory(string(models.CategoryPassenger)),
					OwnPassenger(d.Store),
					UpdatePassenger(d.Passengers))
			}

			drivers := protected.Group("/drivers")
			{
				drivers.GET("", ListDrivers(d.Drivers))
				drivers.GET("/available", ListAvailableDrivers(d.Drivers))
				drivers.GET("/:id", GetDriver(d.Drivers))

				self := []gin.HandlerFunc{
					middleware.RequireCategory(string(models.CategoryDriver)),
					OwnDriver(d.Store),
				}
				drivers.PUT("/:id/status", append(self, UpdateDriverStatus(d.Drivers))...)
				drivers.PUT("/:id/location", append(self, UpdateDriverLocation(d.Drivers))...)
			}

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", CreateBooking(d.Bookings))
				bookings.GET("", ListBookings(d.Bookings))
				bookings.GET("/passenger/:id", ListPassengerBookings(d.Bookings))
			}

			trips := protected.Group("/trips")
			{
				trips.POST("", CreateTrip(d.Trips))
				trips.GET("/:id", GetTrip(d.Trips))
				trips.PUT("/:id/status", UpdateTripStatus(d.Trips))
				trips.GET("/:id/payments", ListTripPayments(d.Payments))
			}

			protected.POST("/payments", CreatePayment(d.Payments))

			stats := protected.Group("/stats")
			{
				stats.GET("/ratings-by-car-type", RatingsByCarType(d.Stats))
				stats.GET("/age", AgeStats(d.Stats))
				stats.GET("/passengers-by-age", PassengersByAgeGroup(d.Stats))
			}

			protected.GET("/queries", ListQueries(d.Console))
			protected.POST("/execute-query", ExecuteQuery(d.Console))
		}
	}
}

// Health reports whether the store answers.
func Health(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
}
