package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/services"
)

func ListQueries(console *services.QueryConsole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, console.Queries())
	}
}

// ExecuteQuery runs one of the predefined statements, picked either by name
// or by its exact SQL text.
func ExecuteQuery(console *services.QueryConsole) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Query string `json:"query"`
			Name  string `json:"name"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
		query := input.Name
		if strings.TrimSpace(query) == "" {
			query = input.Query
		}
		if strings.TrimSpace(query) == "" {
			respondError(c, apperr.InvalidRequest("query or name is required"))
			return
		}

		rows, err := console.Execute(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"rows": rows, "count": len(rows)})
	}
}
