package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/services"
)

// CreateTrip assigns a driver to a booking and prices the ride.
func CreateTrip(trips *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			BookingID uint `json:"booking_id" binding:"required"`
			DriverID  uint `json:"driver_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		t, err := trips.Create(c.Request.Context(), input.BookingID, input.DriverID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message": "Trip created successfully",
			"trip_id": t.ID,
			"fare":    t.Fare,
			"trip":    t,
		})
	}
}

func GetTrip(trips *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		t, err := trips.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, t)
	}
}

// UpdateTripStatus moves a trip along; completing or cancelling it frees the
// driver.
func UpdateTripStatus(trips *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		t, err := trips.SetStatus(c.Request.Context(), id, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message": "Trip status updated",
			"trip":    t,
		})
	}
}
