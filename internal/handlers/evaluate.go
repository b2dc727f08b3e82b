package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
	"smart_fan/internal/report"
	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"
)

// PolicyOverride replaces the configured thresholds field by field.
type PolicyOverride struct {
	HighC    *float64 `json:"high_c,omitempty" example:"26"`
	LowC     *float64 `json:"low_c,omitempty" example:"25.5"`
	MinHoldS *float64 `json:"min_hold_s,omitempty" example:"120"`
}

// EvaluateRequest carries one session to run the fan policy over.
type EvaluateRequest struct {
	Temperature []control.TemperatureSample `json:"temperature"`
	Energy      []control.EnergySample      `json:"energy"`
	Policy      *PolicyOverride             `json:"policy,omitempty"`
	Rates       *impact.Rates               `json:"rates,omitempty"`
	Projection  *impact.Projection          `json:"projection,omitempty"`
	Persist     bool                        `json:"persist"`
}

// evaluationSummary is an evaluation without its per-sample series.
type evaluationSummary struct {
	RunID  string `json:"run_id,omitempty"`
	Source string `json:"source"`
	report.Report
}

func summarize(ev service.Evaluation) evaluationSummary {
	return evaluationSummary{RunID: ev.RunID, Source: ev.Source, Report: ev.Report()}
}

// maxHoldSeconds is the largest min_hold_s that fits a time.Duration.
const maxHoldSeconds = float64(math.MaxInt64 / int64(time.Second))

var errHoldOutOfRange = errors.New("invalid 'min_hold_s'; out of range")

func (o *PolicyOverride) apply(base control.Policy) (control.Policy, error) {
	if o == nil {
		return base, nil
	}
	if o.HighC != nil {
		base.HighC = *o.HighC
	}
	if o.LowC != nil {
		base.LowC = *o.LowC
	}
	if o.MinHoldS != nil {
		if math.Abs(*o.MinHoldS) > maxHoldSeconds {
			return control.Policy{}, errHoldOutOfRange
		}
		base.MinHold = time.Duration(*o.MinHoldS * float64(time.Second))
	}
	return base, nil
}

// @Summary      Evaluate a session
// @Description  Runs the hysteresis policy over the temperature series, masks the always-on energy series and reports savings. Thresholds are inclusive; high_c < low_c or a negative hold is a 400.
// @Tags         evaluate
// @Accept       json
// @Produce      json
// @Param        body    body      EvaluateRequest  true   "Session"
// @Param        series  query     bool             false  "Include timeline and masked series (default true)"
// @Success      200     {object}  service.Evaluation
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/evaluate [post]
// @Security     BearerAuth
func (h *Handler) evaluate(c *gin.Context) {
	var req EvaluateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	policy, err := req.Policy.apply(h.services.Defaults().Policy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := h.services.Evaluate(c.Request.Context(), service.EvaluateParams{
		Temperature: req.Temperature,
		Energy:      req.Energy,
		Policy:      &policy,
		Rates:       req.Rates,
		Projection:  req.Projection,
		Persist:     req.Persist,
	})
	if err != nil {
		h.respondServiceError(c, errEvaluate, "evaluate_failed", err,
			"temperature_samples", len(req.Temperature), "energy_samples", len(req.Energy))
		return
	}
	h.respondEvaluation(c, ev)
}

// @Summary      Evaluate a device's latest readings
// @Tags         evaluate
// @Produce      json
// @Param        device_id   query     string  true   "Device id"  example(fan-1)
// @Param        limit       query     int     false  "Readings to evaluate"
// @Param        high_c      query     number  false  "Override on threshold"
// @Param        low_c       query     number  false  "Override off threshold"
// @Param        min_hold    query     string  false  "Override dwell, Go duration"  example(2m)
// @Param        persist     query     bool    false  "Record the run"
// @Param        series      query     bool    false  "Include timeline and masked series (default true)"
// @Success      200         {object}  service.Evaluation
// @Failure      400         {object}  map[string]string
// @Failure      401         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /api/v1/evaluate/live [get]
// @Security     BearerAuth
func (h *Handler) evaluateLive(c *gin.Context) {
	device := strings.TrimSpace(c.Query("device_id"))
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	policy, err := parsePolicyQuery(c, h.services.Defaults().Policy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	persist, err := parseBoolQuery(c, "persist", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := h.services.EvaluateLive(c.Request.Context(), service.LiveParams{
		DeviceID: device,
		Limit:    limit,
		Policy:   &policy,
		Persist:  persist,
	})
	if err != nil {
		h.respondServiceError(c, errEvaluate, "evaluate_live_failed", err, "device_id", device)
		return
	}
	h.respondEvaluation(c, ev)
}

func (h *Handler) respondEvaluation(c *gin.Context, ev service.Evaluation) {
	series, err := parseBoolQuery(c, "series", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !series {
		c.JSON(http.StatusOK, summarize(ev))
		return
	}
	c.JSON(http.StatusOK, ev)
}

// parsePolicyQuery overlays ?high_c, ?low_c and ?min_hold on base.
func parsePolicyQuery(c *gin.Context, base control.Policy) (control.Policy, error) {
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"high_c", &base.HighC},
		{"low_c", &base.LowC},
	} {
		qs := c.Query(f.key)
		if qs == "" {
			continue
		}
		v, err := strconv.ParseFloat(qs, 64)
		if err != nil {
			return control.Policy{}, fmt.Errorf("invalid '%s'; use a number", f.key)
		}
		*f.dst = v
	}
	if qs := c.Query("min_hold"); qs != "" {
		d, err := time.ParseDuration(qs)
		if err != nil {
			return control.Policy{}, fmt.Errorf("invalid 'min_hold'; use a duration like 2m")
		}
		base.MinHold = d
	}
	return base, nil
}

func parseBoolQuery(c *gin.Context, key string, def bool) (bool, error) {
	qs := c.Query(key)
	if qs == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(qs)
	if err != nil {
		return false, fmt.Errorf("invalid '%s'; use true or false", key)
	}
	return v, nil
}
