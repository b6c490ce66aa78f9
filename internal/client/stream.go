package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"hydroponics/internal/models"

	"github.com/gorilla/websocket"
)

type streamEnvelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Stream subscribes to the live readings of a system and calls fn with every
// push, newest first. It returns nil when the server closes the stream
// normally and ctx.Err() once ctx is canceled.
func (c *Client) Stream(ctx context.Context, systemID int, interval time.Duration, fn func([]models.Measurement)) error {
	token, ok := c.session.Token()
	if !ok {
		return ErrNotLoggedIn
	}

	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += fmt.Sprintf("/ws/systems/%d", systemID)
	q := url.Values{"token": {token}}
	if interval > 0 {
		q.Set("interval", interval.String())
	}
	u.RawQuery = q.Encode()
	op := "WS " + u.Path

	dialer := websocket.Dialer{HandshakeTimeout: defaultTimeout}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		te := &TransportError{Op: op, Err: err}
		if resp != nil {
			te.StatusCode = resp.StatusCode
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			_ = resp.Body.Close()
			te.Body = string(raw)
		}
		return te
	}
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var env streamEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return &TransportError{Op: op, Err: err}
		}
		switch env.Type {
		case "measurements":
			var ms []models.Measurement
			if err := json.Unmarshal(env.Data, &ms); err != nil {
				return &TransportError{Op: op, Err: fmt.Errorf("decode push: %w", err)}
			}
			fn(ms)
		case "error":
			return &TransportError{Op: op, Err: errors.New(env.Error)}
		default:
			c.log.Debugw("ws_unknown_message", "type", env.Type)
		}
	}
}
