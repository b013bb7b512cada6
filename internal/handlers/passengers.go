package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/services"
)

func ListPassengers(passengers *services.PassengerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := passengers.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}

func GetPassenger(passengers *services.PassengerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		p, err := passengers.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, p)
	}
}

func UpdatePassenger(passengers *services.PassengerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input models.PassengerUpdate
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		p, err := passengers.Update(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, p)
	}
}
