package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hydroponics/internal/measurement"
	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errNotFound       = "Not found."
	errInternal       = "A server error occurred."
	errInvalidID      = "Invalid id."
	errInvalidBodyPre = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// detail writes a {"detail": msg} body, the shape used by the resource endpoints.
func detail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"detail": msg})
}

// writeServiceError maps domain errors to status codes; anything unknown is logged as a 500.
func (h *Handler) writeServiceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var ve *measurement.ValidationError
	switch {
	case errors.Is(err, service.ErrSystemNotFound):
		detail(c, http.StatusNotFound, errNotFound)
	case errors.Is(err, service.ErrForbidden):
		detail(c, http.StatusForbidden, "You do not have permission to access this system.")
	case errors.As(err, &ve),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidTimeRange):
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		detail(c, http.StatusBadRequest, err.Error())
	default:
		if h.log != nil {
			h.log.Errorw(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		detail(c, http.StatusInternalServerError, errInternal)
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPre + err.Error()})
		return false
	}
	return true
}

// pathID parses the :id route parameter, writing a 404 when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		detail(c, http.StatusNotFound, errNotFound)
		return 0, false
	}
	return id, true
}

// currentUser returns the id stored by userIdMiddleware.
func currentUser(c *gin.Context) int {
	return c.GetInt(userIDKey)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
