package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"debt_ledger/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError maps a service error onto a status code and a JSON error body.
// Store failures are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domain.ErrInvalidCurrentPassword):
		status, msg = http.StatusBadRequest, "Current password is incorrect"
	case errors.Is(err, domain.ErrWeakPassword):
		status, msg = http.StatusBadRequest, "Password must be at least 5 characters"
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrPasswordChangeRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Password change required", "redirect": "/change-password"})
		return
	default:
		_ = c.Error(err) // Picked up by the request logger
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

// badRequest answers a body that failed to bind.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
