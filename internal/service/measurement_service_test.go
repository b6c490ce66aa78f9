package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

func newMeasurementSvc(t *testing.T) (*MeasurementService, *memRepos, *memActivity, models.System) {
	t.Helper()
	mem := newMemRepos()
	act := &memActivity{memRepos: mem}
	sys, err := memSystems{mem}.Create(context.Background(), models.System{OwnerID: 1, Name: "Rack"})
	if err != nil {
		t.Fatalf("seed system: %v", err)
	}
	svc := NewMeasurementService(memSystems{mem}, memMeasurements{mem}, memPrefs{mem}, act,
		measurement.ChartOptions{Layout: "15:04", Location: time.UTC})
	return svc, mem, act, sys
}

func TestMeasurementService_CreateValidatesAndRecords(t *testing.T) {
	svc, _, act, sys := newMeasurementSvc(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, 1, sys.ID, measurement.Submission{PH: 6.5, Temperature: 21.5, TDS: 900})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID == 0 || m.SystemID != sys.ID || m.Timestamp.IsZero() || m.Timestamp.Location() != time.UTC {
		t.Fatalf("unexpected measurement: %+v", m)
	}
	if got := act.types(); len(got) != 1 || got[0] != models.ActivityMeasurementAdded {
		t.Fatalf("expected MEASUREMENT_ADDED, got %v", got)
	}

	_, err = svc.Create(ctx, 1, sys.ID, measurement.Submission{PH: 15, Temperature: 21.5, TDS: 900})
	var ve *measurement.ValidationError
	if !errors.As(err, &ve) || ve.Field != "ph" {
		t.Fatalf("expected ph ValidationError, got %v", err)
	}
}

func TestMeasurementService_Ownership(t *testing.T) {
	svc, _, _, sys := newMeasurementSvc(t)
	ctx := context.Background()
	ok := measurement.Submission{PH: 6, Temperature: 20, TDS: 1}

	tests := []struct {
		name    string
		userID  int
		system  int
		wantErr error
	}{
		{name: "foreign system is forbidden", userID: 2, system: sys.ID, wantErr: ErrForbidden},
		{name: "missing system is not found", userID: 1, system: 999, wantErr: ErrSystemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.List(ctx, tt.userID, tt.system, repository.MeasurementQuery{}); !errors.Is(err, tt.wantErr) {
				t.Errorf("List: got %v want %v", err, tt.wantErr)
			}
			if _, err := svc.Create(ctx, tt.userID, tt.system, ok); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create: got %v want %v", err, tt.wantErr)
			}
			if _, err := svc.Chart(ctx, tt.userID, tt.system, repository.MeasurementQuery{}); !errors.Is(err, tt.wantErr) {
				t.Errorf("Chart: got %v want %v", err, tt.wantErr)
			}
			if _, err := svc.Latest(ctx, tt.userID, tt.system, 5); !errors.Is(err, tt.wantErr) {
				t.Errorf("Latest: got %v want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMeasurementService_CreateChecksOwnershipBeforeInput(t *testing.T) {
	svc, mem, act, sys := newMeasurementSvc(t)
	bad := measurement.Submission{PH: 99, Temperature: 20, TDS: -1}

	if _, err := svc.Create(context.Background(), 2, sys.ID, bad); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign system with bad input: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Create(context.Background(), 1, 999, bad); !errors.Is(err, ErrSystemNotFound) {
		t.Fatalf("missing system with bad input: got %v, want ErrSystemNotFound", err)
	}
	if len(mem.measurements) != 0 || len(act.types()) != 0 {
		t.Fatalf("rejected create must not store or record anything")
	}
}

func TestMeasurementService_ChartUsesThemePreference(t *testing.T) {
	svc, mem, _, sys := newMeasurementSvc(t)
	ctx := context.Background()

	b, err := svc.Chart(ctx, 1, sys.ID, repository.MeasurementQuery{})
	if err != nil {
		t.Fatalf("Chart(empty): %v", err)
	}
	if b != nil {
		t.Fatalf("empty system must yield no chart, got %+v", b)
	}

	_, _ = memMeasurements{mem}.Create(ctx, models.Measurement{
		SystemID: sys.ID, Timestamp: time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), PH: 6.1, Temperature: 20, TDS: 700,
	})

	light, err := svc.Chart(ctx, 1, sys.ID, repository.MeasurementQuery{})
	if err != nil || light == nil {
		t.Fatalf("Chart(light): %v %+v", err, light)
	}
	if light.Labels[0] != "08:30" {
		t.Fatalf("label layout not applied: %q", light.Labels[0])
	}

	if err := (memPrefs{mem}).Save(ctx, models.Preferences{UserID: 1, DarkMode: true}); err != nil {
		t.Fatalf("save prefs: %v", err)
	}
	dark, err := svc.Chart(ctx, 1, sys.ID, repository.MeasurementQuery{})
	if err != nil || dark == nil {
		t.Fatalf("Chart(dark): %v", err)
	}
	if dark.Series(measurement.SeriesPH).BorderColor == light.Series(measurement.SeriesPH).BorderColor {
		t.Fatalf("dark preference should switch palette")
	}
}
