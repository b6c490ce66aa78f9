package service

import (
	"context"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

type MeasurementService struct {
	systems      repository.SystemRepo
	measurements repository.MeasurementRepo
	prefs        repository.PreferencesRepo
	activity     repository.ActivityRepo
	chart        measurement.ChartOptions
}

func NewMeasurementService(
	systems repository.SystemRepo,
	measurements repository.MeasurementRepo,
	prefs repository.PreferencesRepo,
	activity repository.ActivityRepo,
	chart measurement.ChartOptions,
) *MeasurementService {
	return &MeasurementService{
		systems:      systems,
		measurements: measurements,
		prefs:        prefs,
		activity:     activity,
		chart:        chart,
	}
}

// authorize distinguishes a missing system (ErrSystemNotFound) from
// someone else's (ErrForbidden).
func (s *MeasurementService) authorize(ctx context.Context, userID, systemID int) error {
	owner, err := s.systems.OwnerOf(ctx, systemID)
	if err != nil {
		return err
	}
	switch {
	case owner == 0:
		return ErrSystemNotFound
	case owner != userID:
		return ErrForbidden
	}
	return nil
}

func (s *MeasurementService) List(ctx context.Context, userID, systemID int, q repository.MeasurementQuery) ([]models.Measurement, int, error) {
	if err := s.authorize(ctx, userID, systemID); err != nil {
		return nil, 0, err
	}
	return s.measurements.List(ctx, systemID, q)
}

func (s *MeasurementService) Latest(ctx context.Context, userID, systemID, limit int) ([]models.Measurement, error) {
	if err := s.authorize(ctx, userID, systemID); err != nil {
		return nil, err
	}
	return s.measurements.Latest(ctx, systemID, limit)
}

// Create checks ownership, validates the reading and stores it with the current time.
func (s *MeasurementService) Create(ctx context.Context, userID, systemID int, sub measurement.Submission) (models.Measurement, error) {
	if err := s.authorize(ctx, userID, systemID); err != nil {
		return models.Measurement{}, err
	}
	if err := measurement.Validate(sub); err != nil {
		return models.Measurement{}, err
	}
	m, err := s.measurements.Create(ctx, models.Measurement{
		SystemID:    systemID,
		Timestamp:   time.Now().UTC(),
		PH:          sub.PH,
		Temperature: sub.Temperature,
		TDS:         sub.TDS,
	})
	if err != nil {
		return models.Measurement{}, err
	}
	record(ctx, s.activity, userID, models.ActivityMeasurementAdded, "Measurement added", map[string]any{
		"system_id":      systemID,
		"measurement_id": m.ID,
		"ph":             m.PH,
		"temperature":    m.Temperature,
		"tds":            m.TDS,
	})
	return m, nil
}

// Chart assembles the filtered readings in the caller's theme. A nil bundle
// means there is nothing to draw.
func (s *MeasurementService) Chart(ctx context.Context, userID, systemID int, q repository.MeasurementQuery) (*measurement.ChartSeriesBundle, error) {
	ms, _, err := s.List(ctx, userID, systemID, q)
	if err != nil {
		return nil, err
	}
	opts := s.chart
	if s.prefs != nil {
		p, err := s.prefs.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		opts.Dark = p.DarkMode
	}
	return measurement.Assemble(ms, opts), nil
}
