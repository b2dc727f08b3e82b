package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"
)

const errLimitInvalid = "invalid 'limit'; use a positive integer"

// IngestReadingRequest is the telemetry a device posts. A missing fan_mode
// or power_w is derived from temp_c.
type IngestReadingRequest struct {
	DeviceID  string     `json:"device_id" binding:"required" example:"fan-1"`
	TempC     *float64   `json:"temp_c" binding:"required" example:"26.4"`
	PowerW    *float64   `json:"power_w,omitempty" example:"1.182"`
	FanMode   string     `json:"fan_mode,omitempty" example:"MEDIUM"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// @Summary      Ingest a device reading
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        apikey  header    string                true  "Device API key"
// @Param        body    body      IngestReadingRequest  true  "Reading"
// @Success      201     {object}  models.Reading
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /ingest/readings [post]
func (h *Handler) ingestReading(c *gin.Context) {
	var req IngestReadingRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	in := service.ReadingInput{
		DeviceID: req.DeviceID,
		TempC:    *req.TempC,
		PowerW:   req.PowerW,
		FanMode:  req.FanMode,
	}
	if req.CreatedAt != nil {
		in.CreatedAt = *req.CreatedAt
	}

	stored, err := h.services.Ingest(c.Request.Context(), in)
	if err != nil {
		h.respondServiceError(c, errStoreReading, "reading_ingest_failed", err, "device_id", req.DeviceID)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// @Summary      Latest readings of a device
// @Description  Newest readings, returned oldest first.
// @Tags         readings
// @Produce      json
// @Param        device_id  query     string  true   "Device id"  example(fan-1)
// @Param        limit      query     int     false  "Max readings (default from config, capped at 5000)"
// @Success      200        {object}  map[string]interface{}  "count, readings"
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) getReadings(c *gin.Context) {
	device := strings.TrimSpace(c.Query("device_id"))
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	readings, err := h.services.Latest(c.Request.Context(), service.ReadingFilter{DeviceID: device, Limit: limit})
	if err != nil {
		h.respondServiceError(c, errLoadReadings, "readings_list_failed", err, "device_id", device)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

// parseLimit reads the optional ?limit; it writes a 400 and returns false on garbage.
func parseLimit(c *gin.Context) (int, bool) {
	qs := c.Query("limit")
	if qs == "" {
		return 0, true
	}
	n, err := strconv.Atoi(qs)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
		return 0, false
	}
	return n, true
}
