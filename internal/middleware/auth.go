package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ContextUsername = "username"
	ContextCategory = "category"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// First try to get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Browsers cannot set headers on a WebSocket handshake
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			abort(c, apperr.Unauthorized("authorization header or token query parameter required"))
			return
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			abort(c, apperr.Unauthorized("invalid token"))
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextCategory, claims.Category)
		c.Next()
	}
}

// RequireCategory lets through only accounts of one of the given categories.
// It must run after AuthMiddleware.
func RequireCategory(categories ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetString(ContextCategory)
		for _, want := range categories {
			if got == want {
				c.Next()
				return
			}
		}
		abort(c, apperr.Forbidden("this action requires a %s account", strings.Join(categories, " or ")))
	}
}

func abort(c *gin.Context, err *apperr.Error) {
	status := 401
	if err.Kind == apperr.KindForbidden {
		status = 403
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Message, "code": err.Kind.String()})
}
