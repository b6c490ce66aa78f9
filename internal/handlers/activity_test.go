package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hydroponics/internal/models"
	"hydroponics/internal/service"
)

func authedRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

func TestActivityHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.ActivityEvent{
		{EventID: "e1", UserID: 99, OccurredAt: now, Type: models.ActivitySystemCreated, Description: "System created"},
		{EventID: "e2", UserID: 99, OccurredAt: now.Add(time.Second), Type: models.ActivityMeasurementAdded, Description: "Measurement added"},
	}
	activity := &mockActivityLog{resp: events}
	s := &service.Service{
		Authorization: auth,
		ActivityLog:   activity,
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/activity/?from=notatime", "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/activity/?from=2025-08-02&to=2025-08-01", "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	q := "/activity/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=measurement_added"
	r.ServeHTTP(w, authedRequest(http.MethodGet, q, "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("activity status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                    `json:"count"`
		Events []models.ActivityEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if activity.lastUser != 99 {
		t.Fatalf("expected caller id 99 passed to service, got %d", activity.lastUser)
	}
	if activity.lastType != "MEASUREMENT_ADDED" {
		t.Fatalf("expected normalized type, got %q", activity.lastType)
	}
	if !activity.lastFrom.Equal(now) {
		t.Fatalf("from=%v want %v", activity.lastFrom, now)
	}
}

func TestActivityHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	activity := &mockActivityLog{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, ActivityLog: activity})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/activity/?to=2025-08-31", "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !activity.lastTo.Equal(want) {
		t.Fatalf("to=%v want %v", activity.lastTo, want)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-08-27", want: time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)},
		{in: "2025-08-27 15:04:05", want: time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC)},
		{in: "2025-08-27T15:04:05+02:00", want: time.Date(2025, 8, 27, 13, 4, 5, 0, time.UTC)},
		{in: "27/08/2025", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseQueryTime(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseQueryTime(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || !got.Equal(tc.want) {
			t.Fatalf("parseQueryTime(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
