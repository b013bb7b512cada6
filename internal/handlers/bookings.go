package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/services"
)

// CreateBooking records a ride request. The trip is created separately once
// the passenger picks a driver.
func CreateBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PassengerID    uint   `json:"passenger_id" binding:"required"`
			PickupLocation string `json:"pickup_location" binding:"required"`
			DropLocation   string `json:"drop_location" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		b, err := bookings.Create(c.Request.Context(), input.PassengerID, input.PickupLocation, input.DropLocation)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message": "Booking created successfully",
			"id":      b.ID,
			"booking": b,
		})
	}
}

func ListBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := bookings.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}

func ListPassengerBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		out, err := bookings.ListByPassenger(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}
