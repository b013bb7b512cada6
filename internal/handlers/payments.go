package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/services"
)

func CreatePayment(payments *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TripID        uint     `json:"trip_id" binding:"required"`
			PaymentType   string   `json:"payment_type" binding:"required"`
			PaymentAmount *float64 `json:"payment_amount" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		p, err := payments.Record(c.Request.Context(), input.TripID, input.PaymentType, *input.PaymentAmount)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message":    "Payment recorded successfully",
			"payment_id": p.ID,
			"payment":    p,
		})
	}
}

func ListTripPayments(payments *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		out, err := payments.ListByTrip(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, out)
	}
}
