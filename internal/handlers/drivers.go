package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/services"
)

func ListDrivers(drivers *services.DriverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := drivers.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}

// ListAvailableDrivers returns the drivers a passenger can pick, best rated
// first.
func ListAvailableDrivers(drivers *services.DriverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := drivers.ListAvailable(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}

func GetDriver(drivers *services.DriverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		d, err := drivers.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, d)
	}
}

func UpdateDriverStatus(drivers *services.DriverService) gin.HandlerFunc {
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

		d, err := drivers.SetStatus(c.Request.Context(), id, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message": "Driver status updated",
			"driver":  d,
		})
	}
}

func UpdateDriverLocation(drivers *services.DriverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			CabLocation string `json:"cab_location" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		if err := drivers.SetLocation(c.Request.Context(), id, input.CabLocation); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Location updated successfully"})
	}
}
