package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 2 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms

	wsTypeEvaluation = "evaluation"
	wsTypeError      = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// wsEvaluation is the live push: the rolling report plus the current decision.
type wsEvaluation struct {
	evaluationSummary
	DeviceID string    `json:"device_id"`
	FanOn    bool      `json:"fan_on"`
	At       time.Time `json:"at,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the dashboard host is configurable
}

// @Summary      Live evaluation stream
// @Description  Upgrades to a websocket and pushes {"type":"evaluation","data":...} for the device every interval.
// @Tags         evaluate
// @Param        device_id    query  string  true   "Device id"
// @Param        interval     query  string  false  "Push interval, Go duration (max 10s)"  example(2s)
// @Param        interval_ms  query  int     false  "Push interval in milliseconds (max 10000)"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	device := strings.TrimSpace(c.Query("device_id"))
	if device == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := h.sendEvaluation(c.Request.Context(), conn, device); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "device_id", device, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendEvaluation(c.Request.Context(), conn, device); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "device_id", device, "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return h.opts.LiveInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendEvaluation evaluates the device's latest readings and writes the result.
// Evaluation failures are pushed to the client as error frames; only write
// failures end the stream.
func (h *Handler) sendEvaluation(ctx context.Context, conn *websocket.Conn, device string) error {
	msg := wsEnvelope{Type: wsTypeEvaluation}
	ev, err := h.services.EvaluateLive(ctx, service.LiveParams{DeviceID: device, Limit: h.opts.LiveLimit})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_evaluate_failed", "device_id", device, "err", err)
		}
		msg = wsEnvelope{Type: wsTypeError, Error: errEvaluate}
	} else {
		live := wsEvaluation{evaluationSummary: summarize(ev), DeviceID: device}
		if n := len(ev.Timeline); n > 0 {
			live.FanOn = ev.Timeline[n-1].FanOn
			live.At = ev.Timeline[n-1].Time
		}
		msg.Data = live
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
