package handlers

import (
	"errors"
	"net/http"

	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errEvaluate        = "failed to evaluate session"
	errLoadReadings    = "failed to load readings"
	errStoreReading    = "failed to store reading"
	errLoadRuns        = "failed to load runs"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError answers caller mistakes with 400 and their message,
// anything else with 500 and a fixed message.
func (h *Handler) respondServiceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if errors.Is(err, service.ErrInvalidInput) {
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
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

// @Summary      Configured defaults
// @Description  Policy thresholds, tariff and projection used when a request omits them.
// @Tags         system
// @Produce      json
// @Success      200  {object}  service.Defaults
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/defaults [get]
// @Security     BearerAuth
func (h *Handler) getDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Defaults())
}
