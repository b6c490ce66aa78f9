package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotLoggedIn is returned by authenticated calls made without a session token.
var ErrNotLoggedIn = errors.New("not logged in")

// TransportError reports a request that failed on the network or came back non-2xx.
type TransportError struct {
	Op         string // e.g. "GET /systems/"
	StatusCode int    // 0 when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	if msg := e.Detail(); msg != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Detail extracts the server's message from a {"detail": ...} or {"error": ...}
// body, falling back to the trimmed body text.
func (e *TransportError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(e.Body)
}

// IsStatus reports whether err is a TransportError with the given status code.
func IsStatus(err error, code int) bool {
	var te *TransportError
	return errors.As(err, &te) && te.StatusCode == code
}
