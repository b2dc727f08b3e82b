package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List evaluation runs
// @Description  Filter recorded runs by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         runs
// @Produce      json
// @Param        from    query   string  false  "Start of range"  example(2026-02-01)
// @Param        to      query   string  false  "End of range. Date-only treated as end of day."  example(2026-02-28)
// @Param        source  query   string  false  "Run source"  Enums(inline,live,csv)
// @Success      200     {object}  map[string]interface{}  "count, runs"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/runs [get]
// @Security     BearerAuth
func (h *Handler) getRuns(c *gin.Context) {
	var (
		from   time.Time
		to     time.Time
		source = strings.ToLower(strings.TrimSpace(c.Query("source")))
		err    error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	runs, err := h.services.RunLog.List(c.Request.Context(), service.RunFilter{
		From:   from,
		To:     to,
		Source: source,
	})
	if err != nil {
		h.respondServiceError(c, errLoadRuns, "runs_list_failed", err, "from", from, "to", to, "source", source)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-02-07T14:00:00Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
