package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"hydroponics/internal/metrics"
	"hydroponics/internal/models"
	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultInterval},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=2m", defaultInterval},
		{"interval_too_small", "/ws?interval=1ms", defaultInterval},
		{"interval_ms_too_large", "/ws?interval_ms=120000", defaultInterval},
		{"interval_invalid_string", "/ws?interval=bogus", defaultInterval},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", defaultInterval},
		{"both_present_interval_wins", "/ws?interval=3s&interval_ms=150", 3 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func newWSServer(t *testing.T, s *service.Service, m *metrics.Metrics) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{Metrics: m})
	srv := httptest.NewServer(h.InitRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string, params url.Values) string {
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = path
	u.RawQuery = params.Encode()
	return u.String()
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func TestWebSocket_MeasurementStream_InitialAndPeriodic(t *testing.T) {
	ms := &mockMeasurements{latest: []models.Measurement{
		{ID: 2, PH: 6.4, Temperature: 21, TDS: 800, SystemID: 5},
		{ID: 1, PH: 6.2, Temperature: 20, TDS: 780, SystemID: 5},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Measurements: ms}
	m := metrics.New()
	srv := newWSServer(t, s, m)

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(srv, "/ws/systems/5", url.Values{
		"token":       {"tok"},
		"interval_ms": {"20"},
		"limit":       {"1"},
	}), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != wsTypeMeasurements {
		t.Fatalf("bad envelope: %+v", env)
	}
	var got []models.Measurement
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("limit not applied or wrong order: %+v", got)
	}
	if ms.lastUser != 7 || ms.lastSystem != 5 {
		t.Fatalf("user=%d system=%d", ms.lastUser, ms.lastSystem)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != wsTypeMeasurements {
		t.Fatalf("expected type=measurements, got %+v", env)
	}
	if v := testutil.ToFloat64(m.StreamClients); v != 1 {
		t.Fatalf("stream_clients=%v want 1", v)
	}
}

func TestWebSocket_RejectsBeforeUpgrade(t *testing.T) {
	cases := []struct {
		name     string
		auth     *mockAuth
		ms       *mockMeasurements
		token    string
		wantCode int
	}{
		{"missing token", &mockAuth{}, &mockMeasurements{}, "", http.StatusUnauthorized},
		{"bad token", &mockAuth{parseErr: errors.New("expired")}, &mockMeasurements{}, "tok", http.StatusUnauthorized},
		{"foreign system", &mockAuth{parseID: 7}, &mockMeasurements{latestErr: service.ErrForbidden}, "tok", http.StatusForbidden},
		{"missing system", &mockAuth{parseID: 7}, &mockMeasurements{latestErr: service.ErrSystemNotFound}, "tok", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newWSServer(t, &service.Service{Authorization: tc.auth, Measurements: tc.ms}, nil)
			params := url.Values{}
			if tc.token != "" {
				params.Set("token", tc.token)
			}
			dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
			_, resp, err := dialer.Dial(wsURL(srv, "/ws/systems/5", params), nil)
			if err == nil {
				t.Fatalf("expected handshake failure")
			}
			if resp == nil || resp.StatusCode != tc.wantCode {
				t.Fatalf("status=%v want %d", resp, tc.wantCode)
			}
		})
	}
}

// flakyLatest succeeds once, then fails every fetch.
type flakyLatest struct {
	mockMeasurements
	calls atomic.Int32
}

func (f *flakyLatest) Latest(_ context.Context, _, _, _ int) ([]models.Measurement, error) {
	if f.calls.Add(1) == 1 {
		return []models.Measurement{}, nil
	}
	return nil, errors.New("db gone")
}

func TestWebSocket_FetchErrorClosesStream(t *testing.T) {
	ms := &flakyLatest{}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Measurements: ms}
	srv := newWSServer(t, s, nil)

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(srv, "/ws/systems/5", url.Values{"interval_ms": {"20"}}), authHeader("tok"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != "error" || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("stream still open after fetch error")
	}
}
