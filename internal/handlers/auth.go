package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/services"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Signup(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		profile, err := auth.Signup(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message": "User created successfully",
			"profile": profile,
		})
	}
}

func Login(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		token, profile, err := auth.Login(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"token":   token,
			"profile": profile,
		})
	}
}
