package service

import (
	"context"
	"strings"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

// latestOnDetail is how many readings a system detail carries.
const latestOnDetail = 10

// SystemInput is the writable part of a system.
type SystemInput struct {
	Name     string
	Location string
}

func (in SystemInput) normalize() (SystemInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" {
		return in, ErrInvalidName
	}
	return in, nil
}

type SystemService struct {
	systems      repository.SystemRepo
	measurements repository.MeasurementRepo
	activity     repository.ActivityRepo
}

func NewSystemService(systems repository.SystemRepo, measurements repository.MeasurementRepo, activity repository.ActivityRepo) *SystemService {
	return &SystemService{systems: systems, measurements: measurements, activity: activity}
}

func (s *SystemService) Create(ctx context.Context, ownerID int, in SystemInput) (models.System, error) {
	in, err := in.normalize()
	if err != nil {
		return models.System{}, err
	}
	sys, err := s.systems.Create(ctx, models.System{OwnerID: ownerID, Name: in.Name, Location: in.Location})
	if err != nil {
		return models.System{}, err
	}
	record(ctx, s.activity, ownerID, models.ActivitySystemCreated, "System created",
		map[string]any{"system_id": sys.ID, "name": sys.Name})
	return sys, nil
}

// Get returns the system with its newest readings, newest first.
func (s *SystemService) Get(ctx context.Context, ownerID, id int) (models.SystemDetail, error) {
	sys, err := s.systems.Get(ctx, ownerID, id)
	if err != nil {
		return models.SystemDetail{}, err
	}
	if sys == nil {
		return models.SystemDetail{}, ErrSystemNotFound
	}
	latest, err := s.measurements.Latest(ctx, id, latestOnDetail)
	if err != nil {
		return models.SystemDetail{}, err
	}
	if latest == nil {
		latest = []models.Measurement{}
	}
	return models.SystemDetail{System: *sys, LatestMeasurements: latest}, nil
}

func (s *SystemService) List(ctx context.Context, ownerID int, q repository.SystemQuery) ([]models.System, int, error) {
	return s.systems.List(ctx, ownerID, q)
}

func (s *SystemService) Update(ctx context.Context, ownerID, id int, in SystemInput) (models.System, error) {
	in, err := in.normalize()
	if err != nil {
		return models.System{}, err
	}
	ok, err := s.systems.Update(ctx, models.System{ID: id, OwnerID: ownerID, Name: in.Name, Location: in.Location})
	if err != nil {
		return models.System{}, err
	}
	if !ok {
		return models.System{}, ErrSystemNotFound
	}
	sys, err := s.systems.Get(ctx, ownerID, id)
	if err != nil {
		return models.System{}, err
	}
	if sys == nil {
		return models.System{}, ErrSystemNotFound
	}
	record(ctx, s.activity, ownerID, models.ActivitySystemUpdated, "System updated",
		map[string]any{"system_id": id, "name": sys.Name})
	return *sys, nil
}

// Delete removes the system and, through the schema, its measurements.
func (s *SystemService) Delete(ctx context.Context, ownerID, id int) error {
	ok, err := s.systems.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSystemNotFound
	}
	record(ctx, s.activity, ownerID, models.ActivitySystemDeleted, "System deleted", map[string]any{"system_id": id})
	return nil
}
