package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

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
	minInterval      = 10 * time.Millisecond
	maxInterval      = 60 * time.Second
	maxIntervalMilli = 60_000
	defaultWSLimit   = 10
	maxWSLimit       = 100
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

const wsTypeMeasurements = "measurements"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict to the dashboard origin once it is configurable
}

// @Summary      Live measurements
// @Description  WebSocket pushing {"type":"measurements","data":[...]} with the newest readings, newest first.
// @Tags         measurements
// @Param        id           path   int     true   "System ID"
// @Param        token        query  string  false  "JWT when no Authorization header can be sent"
// @Param        interval     query  string  false  "Push interval, e.g. 2s"
// @Param        interval_ms  query  int     false  "Push interval in milliseconds"
// @Param        limit        query  int     false  "Readings per push (max 100)"
// @Router       /ws/systems/{id} [get]
func (h *Handler) wsConnect(c *gin.Context) {
	uid, ok := h.wsUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	interval := h.parseInterval(c)
	limit := parseLimit(c)

	// Ownership is checked before the upgrade so failures are plain HTTP errors.
	first, err := h.services.Measurements.Latest(c.Request.Context(), uid, id, limit)
	if err != nil {
		h.writeServiceError(c, err, "ws_initial_fetch_failed", "user_id", uid, "system_id", id)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()
	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := writeEnvelope(conn, wsEnvelope{Type: wsTypeMeasurements, Data: first}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
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
			if err := h.sendLatest(ctx, conn, uid, id, limit); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "system_id", id, "err", err)
				}
				return
			}
		}
	}
}

// wsUser authenticates the upgrade request with ?token= or a Bearer header.
func (h *Handler) wsUser(c *gin.Context) (int, bool) {
	token := c.Query("token")
	if token == "" {
		token, _ = bearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return 0, false
	}
	uid, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return 0, false
	}
	return uid, true
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval/time.Millisecond) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

func parseLimit(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		return min(v, maxWSLimit)
	}
	return defaultWSLimit
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
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

// sendLatest pushes the newest readings. A fetch error is reported to the
// client in the envelope and ends the stream.
func (h *Handler) sendLatest(ctx context.Context, conn *websocket.Conn, uid, systemID, limit int) error {
	ms, err := h.services.Measurements.Latest(ctx, uid, systemID, limit)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_latest_failed", "system_id", systemID, "err", err)
		}
		_ = writeEnvelope(conn, wsEnvelope{Type: "error", Error: "failed to load measurements"})
		return err
	}
	return writeEnvelope(conn, wsEnvelope{Type: wsTypeMeasurements, Data: ms})
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
