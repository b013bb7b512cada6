package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/middleware"
	"github.com/gowheels/gowheels-backend/internal/store"
)

// OwnDriver lets a request through only when :id is the caller's own driver
// profile.
func OwnDriver(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		d, err := st.GetDriverByUsername(c.Request.Context(), c.GetString(middleware.ContextUsername))
		if err != nil {
			denyUnlessStoreDown(c, err, "you can only update your own driver profile")
			return
		}
		if d.ID != id {
			respondError(c, apperr.Forbidden("you can only update your own driver profile"))
			return
		}
		c.Next()
	}
}

// OwnPassenger is OwnDriver for passenger profiles.
func OwnPassenger(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		p, err := st.GetPassengerByUsername(c.Request.Context(), c.GetString(middleware.ContextUsername))
		if err != nil {
			denyUnlessStoreDown(c, err, "you can only update your own passenger profile")
			return
		}
		if p.ID != id {
			respondError(c, apperr.Forbidden("you can only update your own passenger profile"))
			return
		}
		c.Next()
	}
}

// A caller without a profile of that kind is denied, not told it is missing.
func denyUnlessStoreDown(c *gin.Context, err error, msg string) {
	if errors.Is(err, apperr.ErrNotFound) {
		respondError(c, apperr.Forbidden("%s", msg))
		return
	}
	respondError(c, err)
}
