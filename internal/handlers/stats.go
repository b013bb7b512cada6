package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/services"
)

func RatingsByCarType(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.RatingsByCarType(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}

func AgeStats(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.AgeStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}

func PassengersByAgeGroup(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.PassengersByAgeGroup(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}
