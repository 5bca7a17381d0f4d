package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ideaforge/backend/internal/apperr"
)

// statusFor maps a structured error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.InvalidArgument:
		return http.StatusBadRequest
	case apperr.ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error response. Internal detail stays in
// the log; clients only see the message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}

	message := err.Error()
	if e, ok := err.(*apperr.Error); ok {
		message = e.Message
	}
	c.JSON(status, gin.H{"error": message})
}
