package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gowheels/gowheels-backend/internal/apperr"
)

// statusOf maps an error kind onto the HTTP status the API reports.
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidRequest, apperr.KindInvalidState:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnsupported:
		return http.StatusNotImplemented
	case apperr.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the {"error", "code"} body for err. Unclassified and
// store errors are logged and their details kept out of the response.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)

	msg := err.Error()
	var ae *apperr.Error
	classified := errors.As(err, &ae)
	switch {
	case status >= 500:
		_ = c.Error(err)
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		msg = "internal error"
		if kind == apperr.KindStoreUnavailable {
			msg = "data store unavailable"
		}
	case classified:
		msg = ae.Message
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": kind.String()})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, apperr.InvalidRequest("%s", err.Error()))
}

// paramID reads a positive integer path parameter. On failure it has
// already written the 400 response.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperr.InvalidRequest("%s must be a positive integer", name))
		return 0, false
	}
	return uint(id), true
}
